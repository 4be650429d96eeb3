package mesh

import "sync"

// Disposer releases buffers the builder no longer owns. The host decides
// whether that happens at once or later, e.g. after the current frame has
// finished reading the old mesh.
type Disposer interface {
	Dispose(b *Buffers)
}

// ImmediateDisposer releases buffers as soon as they are replaced.
type ImmediateDisposer struct{}

func (ImmediateDisposer) Dispose(b *Buffers) {
	b.release()
}

// DeferredDisposer queues replaced buffers until Flush.
type DeferredDisposer struct {
	mu      sync.Mutex
	pending []*Buffers
}

func (d *DeferredDisposer) Dispose(b *Buffers) {
	d.mu.Lock()
	d.pending = append(d.pending, b)
	d.mu.Unlock()
}

// Pending returns the number of buffers waiting for Flush.
func (d *DeferredDisposer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush releases every queued buffer and returns how many there were.
func (d *DeferredDisposer) Flush() int {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, b := range pending {
		b.release()
	}
	return len(pending)
}
