package builder

import (
	"sync"
	"testing"
	"time"
)

func TestDebounceCoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var delivered []PreviewEdit

	d := NewDebouncer(40*time.Millisecond, func(e PreviewEdit) {
		mu.Lock()
		delivered = append(delivered, e)
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		d.Trigger(PreviewEdit{SectionID: "sec-1", Field: "title", Value: i})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 {
		t.Fatalf("burst of 5 edits delivered %d notifications, want 1", len(delivered))
	}
	if delivered[0].Value != 4 {
		t.Errorf("last edit must win: got %v, want 4", delivered[0].Value)
	}
}

func TestDebounceRapidRetriggerDeliversOnce(t *testing.T) {
	var mu sync.Mutex
	var delivered []PreviewEdit

	// A delay this short makes the timer race real retriggers; the burst
	// must still settle on exactly one notification with the final value.
	d := NewDebouncer(time.Millisecond, func(e PreviewEdit) {
		mu.Lock()
		delivered = append(delivered, e)
		mu.Unlock()
	})

	for i := 0; i < 200; i++ {
		d.Trigger(PreviewEdit{SectionID: "sec-1", Field: "title", Value: i})
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 {
		t.Fatalf("rapid retrigger delivered %d notifications, want 1", len(delivered))
	}
	if delivered[0].Value != 199 {
		t.Errorf("last edit must win: got %v, want 199", delivered[0].Value)
	}
}

func TestDebounceSeparateBursts(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := NewDebouncer(20*time.Millisecond, func(PreviewEdit) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Trigger(PreviewEdit{Field: "title", Value: "a"})
	time.Sleep(80 * time.Millisecond)
	d.Trigger(PreviewEdit{Field: "title", Value: "b"})
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 2 {
		t.Errorf("two separated bursts delivered %d notifications, want 2", count)
	}
}

func TestDebounceStopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := NewDebouncer(30*time.Millisecond, func(PreviewEdit) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Trigger(PreviewEdit{Field: "title", Value: "a"})
	d.Stop()
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("stopped debouncer still delivered %d notifications", count)
	}
}
