package log

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingTransporter collects delivered entries.
type recordingTransporter struct {
	mu       sync.Mutex
	entries  []Entry
	writeErr error
	delay    time.Duration
	closed   bool
}

func (r *recordingTransporter) Name() string { return "recording" }

func (r *recordingTransporter) Write(entry Entry) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if r.writeErr != nil {
		return r.writeErr
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return nil
}

func (r *recordingTransporter) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

func (r *recordingTransporter) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry{}, r.entries...)
}

func (r *recordingTransporter) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func TestBuffer_Close_DeliversPendingAndClosesTransporters(t *testing.T) {
	rec := &recordingTransporter{}
	buf := NewBuffer(100, rec)

	for i := 0; i < 5; i++ {
		buf.Send(*NewEntry(Info, "queued"))
	}
	buf.Close()

	if got := len(rec.Entries()); got != 5 {
		t.Errorf("delivered = %d, want 5", got)
	}
	if !rec.Closed() {
		t.Error("transporter should be closed")
	}
}

func TestBuffer_Overflow_DropsOldest(t *testing.T) {
	// A slow transporter keeps the first entry in flight while the rest pile up.
	rec := &recordingTransporter{delay: 100 * time.Millisecond}
	buf := NewBuffer(2, rec)

	buf.Send(*NewEntry(Info, "first"))
	time.Sleep(20 * time.Millisecond)
	for _, msg := range []string{"a", "b", "c", "d"} {
		buf.Send(*NewEntry(Info, msg))
	}
	buf.Close()

	entries := rec.Entries()
	if buf.DroppedCount() != 2 {
		t.Errorf("DroppedCount() = %d, want 2", buf.DroppedCount())
	}
	last := entries[len(entries)-1].Message
	if last != "d" {
		t.Errorf("last delivered = %q, want %q", last, "d")
	}
	for _, e := range entries {
		if e.Message == "a" || e.Message == "b" {
			t.Errorf("entry %q should have been dropped", e.Message)
		}
	}
}

func TestBuffer_Close_Twice_NoPanic(t *testing.T) {
	buf := NewBuffer(10, &recordingTransporter{})
	buf.Close()
	buf.Close()
}

func TestBuffer_SendAfterClose_Ignored(t *testing.T) {
	rec := &recordingTransporter{}
	buf := NewBuffer(10, rec)
	buf.Close()

	buf.Send(*NewEntry(Info, "late"))

	if len(rec.Entries()) != 0 {
		t.Error("entries sent after Close should be ignored")
	}
}

func TestBuffer_FailingTransporter_DoesNotBlockOthers(t *testing.T) {
	broken := &recordingTransporter{writeErr: errors.New("disk full")}
	healthy := &recordingTransporter{}
	buf := NewBuffer(10, broken, healthy)

	buf.Send(*NewEntry(Error, "boom"))
	buf.Close()

	if len(healthy.Entries()) != 1 {
		t.Errorf("healthy transporter entries = %d, want 1", len(healthy.Entries()))
	}
}

func TestBuffer_ConcurrentSend_AccountsForEveryEntry(t *testing.T) {
	rec := &recordingTransporter{}
	buf := NewBuffer(1000, rec)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				buf.Send(*NewEntry(Info, "concurrent"))
			}
		}()
	}
	wg.Wait()
	buf.Close()

	total := int64(len(rec.Entries())) + buf.DroppedCount()
	if total != 400 {
		t.Errorf("delivered + dropped = %d, want 400", total)
	}
}
