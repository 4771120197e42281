package engine

import (
	"sort"
	"sync"
)

// Scheduler runs deferred tasks on the next Run call. Tasks queued while
// Run is executing wait for the following Run.
type Scheduler struct {
	mu      sync.Mutex
	pending []func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Defer queues fn for the next Run.
func (s *Scheduler) Defer(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Run executes the queued tasks in order and returns how many ran.
func (s *Scheduler) Run() int {
	s.mu.Lock()
	tasks := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// dirtyLines records which lines need repainting. A full redraw supersedes
// individual lines.
type dirtyLines struct {
	full  bool
	lines map[int]struct{}
}

func (d *dirtyLines) markFull() {
	d.full = true
	d.lines = nil
}

// markFrom marks every line from first onward; an edit that changes the
// line count shifts all following lines.
func (d *dirtyLines) markFrom(first, lineCount int) {
	for l := first; l < lineCount; l++ {
		d.mark(l)
	}
}

func (d *dirtyLines) mark(line int) {
	if d.full {
		return
	}
	if d.lines == nil {
		d.lines = make(map[int]struct{})
	}
	d.lines[line] = struct{}{}
}

func (d *dirtyLines) isDirty() bool {
	return d.full || len(d.lines) > 0
}

// take returns the dirty lines below lineCount in ascending order and
// clears the set.
func (d *dirtyLines) take(lineCount int) []int {
	var out []int
	if d.full {
		out = make([]int, lineCount)
		for i := range out {
			out[i] = i
		}
	} else {
		out = make([]int, 0, len(d.lines))
		for l := range d.lines {
			if l < lineCount {
				out = append(out, l)
			}
		}
		sort.Ints(out)
	}
	d.full = false
	d.lines = nil
	return out
}
