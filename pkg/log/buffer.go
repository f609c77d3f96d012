package log

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries to transporters on a background goroutine.
// It holds at most capacity pending entries; when full, the oldest pending
// entry is discarded so the newest diagnostics survive a burst.
type Buffer struct {
	mu       sync.Mutex
	pending  []Entry
	capacity int
	closed   bool

	transporters []Transporter
	dropped      atomic.Int64

	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewBuffer starts a buffer that fans entries out to every transporter.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		pending:      make([]Entry, 0, capacity),
		capacity:     capacity,
		transporters: transporters,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go b.run()
	return b
}

// Send queues an entry. It never blocks and is a no-op after Close.
func (b *Buffer) Send(entry Entry) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if len(b.pending) == b.capacity {
		b.pending = b.pending[1:]
		b.dropped.Add(1)
	}
	b.pending = append(b.pending, entry)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// DroppedCount returns how many entries were discarded on overflow.
func (b *Buffer) DroppedCount() int64 {
	return b.dropped.Load()
}

// Close delivers everything still pending, then closes the transporters.
// Safe to call more than once.
func (b *Buffer) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()

		close(b.done)
		<-b.stopped

		for _, t := range b.transporters {
			if err := t.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "log transporter %q close failed: %v\n", t.Name(), err)
			}
		}
	})
}

func (b *Buffer) run() {
	defer close(b.stopped)
	for {
		select {
		case <-b.wake:
			b.drain()
		case <-b.done:
			b.drain()
			return
		}
	}
}

func (b *Buffer) drain() {
	b.mu.Lock()
	batch := b.pending
	b.pending = make([]Entry, 0, b.capacity)
	b.mu.Unlock()

	for _, entry := range batch {
		b.deliver(entry)
	}
}

// deliver writes to every transporter; failures go to stderr so a broken
// sink never takes the others down.
func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(os.Stderr, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}
