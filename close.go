package recgo

// Close releases resources held by this Recgo instance.
//
// The worker pool is shut down only if the instance owns it; a pool injected
// via WithWorkerPool stays with its caller. Close is idempotent.
func (rg *Recgo[R]) Close() error {
	if rg == nil {
		return nil
	}
	if !rg.closed.CompareAndSwap(false, true) {
		return nil
	}
	if rg.ownsPool {
		rg.pool.Close()
	}
	return nil
}
