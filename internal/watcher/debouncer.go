package watcher

import (
	"sync"
	"time"
)

// pendingChange is a not-yet-flushed event for one path.
type pendingChange struct {
	changeType ChangeType
	timer      *time.Timer
}

// Debouncer coalesces bursts of events per path. Each new event resets the
// path's timer; the callback fires with the latest event type once the
// window passes with no further events. The one exception to last-wins is
// delete followed by create, which flushes as a modification.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[string]*pendingChange
	flush   func(path string, changeType ChangeType)
	stopped bool
}

// NewDebouncer creates a debouncer that calls flush after window elapses
// without further events for a path.
func NewDebouncer(window time.Duration, flush func(path string, changeType ChangeType)) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingChange),
		flush:   flush,
	}
}

// Observe records an event for path, restarting its debounce window.
func (d *Debouncer) Observe(path string, changeType ChangeType) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
		p.changeType = mergeChangeTypes(p.changeType, changeType)
		p.timer.Reset(d.window)
		return
	}

	p := &pendingChange{changeType: changeType}
	p.timer = time.AfterFunc(d.window, func() {
		d.fire(path)
	})
	d.pending[path] = p
}

func (d *Debouncer) fire(path string) {
	d.mu.Lock()
	p, ok := d.pending[path]
	if ok {
		delete(d.pending, path)
	}
	stopped := d.stopped
	d.mu.Unlock()

	if ok && !stopped {
		d.flush(path, p.changeType)
	}
}

// Stop cancels all pending timers. No callbacks fire after Stop returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// Pending returns how many paths have an unflushed event.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// mergeChangeTypes picks the type to keep when a new event lands on an
// already-pending path. The last event wins except that create after
// delete flushes as modified: editors commonly save by writing a temp
// file and renaming it over the original, which the OS reports as a
// delete followed by a create within one debounce window. The file
// still exists with new content, so that pair is a modification.
func mergeChangeTypes(old, new ChangeType) ChangeType {
	if old == ChangeDeleted && new == ChangeCreated {
		return ChangeModified
	}
	return new
}
