// A bounded, most-recent-first ring of human readable progress lines.
// The download worker writes here and clients poll it via the logs
// endpoint, so order and truncation matter more than throughput.

package logbuf

import (
	"fmt"
	"log"
	"sync"
	"time"
)

const DefaultCapacity = 100

// Buffer holds the most recent log lines, newest first. All access is
// serialized by a single lock.
type Buffer struct {
	mu       sync.Mutex
	lines    []string
	capacity int
	notify   func(line string)
}

// New creates a Buffer with the given capacity. A capacity of zero or
// less falls back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// OnAppend registers a callback invoked (outside the lock) with every
// appended line. Used to fan lines out to websocket clients.
func (b *Buffer) OnAppend(fn func(line string)) {
	b.mu.Lock()
	b.notify = fn
	b.mu.Unlock()
}

// Append prepends a timestamped line, dropping the oldest line when the
// buffer is over capacity. The line is also echoed to the process log.
func (b *Buffer) Append(msg string) {
	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	log.Println(entry)

	b.mu.Lock()
	b.lines = append([]string{entry}, b.lines...)
	if len(b.lines) > b.capacity {
		b.lines = b.lines[:b.capacity]
	}
	notify := b.notify
	b.mu.Unlock()

	if notify != nil {
		notify(entry)
	}
}

// Appendf is Append with fmt.Sprintf formatting.
func (b *Buffer) Appendf(format string, args ...any) {
	b.Append(fmt.Sprintf(format, args...))
}

// Snapshot returns a copy of the current lines, newest first.
func (b *Buffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
