package builder

import (
	"sync"
	"time"
)

// PreviewEdit is one property change broadcast to the live preview.
type PreviewEdit struct {
	SectionID string
	Field     string
	Value     any
}

// Debouncer coalesces rapid repeated edits into a single downstream
// notification. Each Trigger cancels the pending timer and schedules a new
// one, so at most one notification fires per quiet window and the last edit
// always wins — no burst ever drops its final state.
type Debouncer struct {
	delay time.Duration
	fn    func(PreviewEdit)

	mu      sync.Mutex
	timer   *time.Timer
	pending PreviewEdit
	gen     uint64
}

// NewDebouncer returns a debouncer delivering to fn after delay of
// inactivity.
func NewDebouncer(delay time.Duration, fn func(PreviewEdit)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger records the edit and restarts the quiet-window timer. The
// generation counter invalidates a timer that already fired past its Stop,
// so a burst never delivers twice.
func (d *Debouncer) Trigger(edit PreviewEdit) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = edit
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		// superseded by a newer Trigger or a Stop while we were firing
		d.mu.Unlock()
		return
	}
	edit := d.pending
	d.timer = nil
	d.mu.Unlock()

	d.fn(edit)
}

// Stop cancels any pending notification without delivering it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
