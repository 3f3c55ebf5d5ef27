package resource

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	t.Run("NilControllerNeverLimits", func(t *testing.T) {
		var c *Controller
		require.NoError(t, c.AcquireFile(context.Background()))
		require.NoError(t, c.AcquireIO(context.Background(), 1<<20))
		c.ReleaseFile()
		assert.Zero(t, c.BytesRead())
	})

	t.Run("FileSlots", func(t *testing.T) {
		c := NewController(Config{MaxOpenFiles: 1})
		require.NoError(t, c.AcquireFile(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := c.AcquireFile(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		c.ReleaseFile()
		require.NoError(t, c.AcquireFile(context.Background()))
		c.ReleaseFile()
	})

	t.Run("AccountsBytes", func(t *testing.T) {
		c := NewController(Config{})
		require.NoError(t, c.AcquireIO(context.Background(), 128))
		require.NoError(t, c.AcquireIO(context.Background(), 64))
		assert.Equal(t, int64(192), c.BytesRead())
	})

	t.Run("SplitsReadsLargerThanBurst", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 26})
		// One full burst plus a little: the second WaitN waits ~16ms.
		total := (1 << 26) + (1 << 20)
		require.NoError(t, c.AcquireIO(context.Background(), total))
		assert.Equal(t, int64(total), c.BytesRead())
	})
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("hello world"), c)

	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(5), c.BytesRead())
}
