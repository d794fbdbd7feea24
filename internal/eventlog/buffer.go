// Package eventlog holds the ordered, append-only buffer of captured
// keystroke records.
package eventlog

import (
	"sync"

	"typetrace/internal/keyevent"
)

// Buffer is an append-only sequence of keystroke records. Records keep
// capture order; the only removal is a full clear. The buffer lives for
// the process only — export is the single way records outlive it.
type Buffer struct {
	mu      sync.RWMutex
	records []keyevent.Record

	// onChange, if set, is invoked after every append and clear so a
	// display list can mirror the buffer. Called with the lock held;
	// must not call back into the buffer.
	onChange func()
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// OnChange registers a mirror callback, replacing any previous one.
func (b *Buffer) OnChange(fn func()) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Append adds one record to the end of the buffer. It never fails.
func (b *Buffer) Append(r keyevent.Record) {
	b.mu.Lock()
	b.records = append(b.records, r)
	if b.onChange != nil {
		b.onChange()
	}
	b.mu.Unlock()
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Empty reports whether the buffer holds no records.
func (b *Buffer) Empty() bool {
	return b.Len() == 0
}

// Snapshot returns a copy of the buffered records in capture order.
func (b *Buffer) Snapshot() []keyevent.Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]keyevent.Record, len(b.records))
	copy(out, b.records)
	return out
}

// At returns the record at index i. It panics on out-of-range access,
// matching slice semantics.
func (b *Buffer) At(i int) keyevent.Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.records[i]
}

// Clear removes all records.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.records = nil
	if b.onChange != nil {
		b.onChange()
	}
	b.mu.Unlock()
}
