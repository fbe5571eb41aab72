package logbuf

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestAppendMostRecentFirst(t *testing.T) {
	b := New(10)
	b.Append("first")
	b.Append("second")

	lines := b.Snapshot()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "second") || !strings.HasSuffix(lines[1], "first") {
		t.Errorf("expected most-recent-first ordering, got %v", lines)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "[") {
			t.Errorf("expected timestamped line, got %q", l)
		}
	}
}

func TestCapacityTruncatesTail(t *testing.T) {
	b := New(5)
	for i := 0; i < 8; i++ {
		b.Appendf("line %d", i)
	}
	lines := b.Snapshot()
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	// Newest survives, oldest three are gone.
	if !strings.HasSuffix(lines[0], "line 7") {
		t.Errorf("expected newest line first, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[4], "line 3") {
		t.Errorf("expected oldest surviving line last, got %q", lines[4])
	}
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	b := New(10)
	b.Append("only")
	s := b.Snapshot()
	s[0] = "clobbered"
	if got := b.Snapshot()[0]; got == "clobbered" {
		t.Error("Snapshot returned a view into internal state")
	}
}

func TestOnAppendNotifies(t *testing.T) {
	b := New(10)
	var got string
	b.OnAppend(func(line string) { got = line })
	b.Append("hello")
	if !strings.HasSuffix(got, "hello") {
		t.Errorf("expected notification for appended line, got %q", got)
	}
}

func TestConcurrentAppend(t *testing.T) {
	b := New(DefaultCapacity)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				b.Append(fmt.Sprintf("worker %d line %d", n, j))
			}
		}(i)
	}
	wg.Wait()
	if got := len(b.Snapshot()); got != DefaultCapacity {
		t.Errorf("expected buffer capped at %d, got %d", DefaultCapacity, got)
	}
}
