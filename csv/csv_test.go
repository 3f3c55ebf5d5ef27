package csv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"Plain", "a,b,c", []string{"a", "b", "c"}},
		{"EmptyFields", "a,,c,", []string{"a", "", "c", ""}},
		{"SingleField", "abc", []string{"abc"}},
		{"EmptyLine", "", []string{""}},
		{"QuotedDelimiter", `"San Jose, CA",PM2.5`, []string{"San Jose, CA", "PM2.5"}},
		{"DoubledQuote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"QuoteMidField", `agency "west",1`, []string{"agency west", "1"}},
		{"UnterminatedQuote", `"open,end`, []string{"open,end"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Tokenize(tc.line, ','))
		})
	}

	t.Run("AlternateDelimiter", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b,c"}, Tokenize("a;b,c", ';'))
	})
}

func TestReadAll(t *testing.T) {
	t.Run("SkipsEmptyLinesAndStripsCR", func(t *testing.T) {
		input := "a,b\r\n\r\nc,d\n\ne,f"
		rows, err := ReadAll(strings.NewReader(input), ',')
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}}, rows)
	})

	t.Run("Empty", func(t *testing.T) {
		rows, err := ReadAll(strings.NewReader(""), ',')
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 10.5, ToFloat("10.5", 0))
	assert.Equal(t, -5.0, ToFloat("-5", 0))
	assert.Equal(t, 0.0, ToFloat("", 0))
	assert.Equal(t, 99.0, ToFloat("", 99))
	assert.Equal(t, 99.0, ToFloat("n/a", 99))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 42, ToInt("42", 0))
	assert.Equal(t, -3, ToInt("-3", 0))
	assert.Equal(t, 7, ToInt("", 7))
	assert.Equal(t, 7, ToInt("4.2", 7))
	assert.Equal(t, 7, ToInt("abc", 7))
}
