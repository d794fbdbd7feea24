package eventlog

import (
	"fmt"
	"testing"
	"time"

	"typetrace/internal/keyevent"
)

func TestAppendKeepsOrder(t *testing.T) {
	b := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		b.Append(keyevent.New(base.Add(time.Duration(i)*time.Millisecond), fmt.Sprintf("k%d", i), ""))
	}

	if b.Len() != 100 {
		t.Fatalf("Len = %d, want 100", b.Len())
	}
	snap := b.Snapshot()
	for i, r := range snap {
		want := fmt.Sprintf("k%d", i)
		if r.Keysym != want {
			t.Fatalf("record %d keysym = %q, want %q", i, r.Keysym, want)
		}
	}
}

func TestClearEmptiesBuffer(t *testing.T) {
	b := New()
	b.Append(keyevent.New(time.Now(), "a", "a"))
	b.Append(keyevent.New(time.Now(), "b", "b"))
	b.Clear()
	if !b.Empty() {
		t.Errorf("buffer not empty after Clear: len %d", b.Len())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	b := New()
	b.Append(keyevent.New(time.Now(), "a", "a"))
	snap := b.Snapshot()
	b.Clear()
	if len(snap) != 1 || snap[0].Keysym != "a" {
		t.Error("snapshot should be unaffected by later mutation")
	}
}

func TestOnChangeMirrorsAppendAndClear(t *testing.T) {
	b := New()
	calls := 0
	b.OnChange(func() { calls++ })

	b.Append(keyevent.New(time.Now(), "a", "a"))
	b.Append(keyevent.New(time.Now(), "b", "b"))
	b.Clear()

	if calls != 3 {
		t.Errorf("onChange called %d times, want 3", calls)
	}
}
