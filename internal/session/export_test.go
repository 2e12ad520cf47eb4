package session

// TickGeneration returns the generation the next ticker goroutine will carry.
func (r *Runner) TickGeneration() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickGen
}

// DeliverTick runs the ticker callback as if a tick of generation gen fired.
func (r *Runner) DeliverTick(gen uint64) {
	r.onTick(gen)
}
