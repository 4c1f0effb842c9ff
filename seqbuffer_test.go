package rollback

import "testing"

func TestSequenceBufferBasicInsertGet(t *testing.T) {
	b := NewSequenceBuffer[string](64)
	b.Insert(10, "A")
	b.Insert(11, "B")
	b.Insert(12, "C")

	if v, ok := b.Get(11); !ok || v != "B" {
		t.Fatalf("Get(11) = (%q, %v), want (B, true)", v, ok)
	}
	if got := b.GetEntriesCount(); got != 3 {
		t.Fatalf("GetEntriesCount() = %d, want 3", got)
	}
}

func TestSequenceBufferCapacityBound(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	for tick := 0; tick < 200; tick++ {
		b.Insert(Tick(tick), tick)
		if got := b.GetEntriesCount(); got > 64 {
			t.Fatalf("GetEntriesCount() = %d after inserting tick %d, want <= 64", got, tick)
		}
	}
}

func TestSequenceBufferEvictsOldEntries(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	for tick := 0; tick <= 70; tick++ {
		b.Insert(Tick(tick), tick)
	}
	if got := b.GetEntriesCount(); got != 64 {
		t.Fatalf("GetEntriesCount() = %d, want 64", got)
	}
	if _, ok := b.Get(0); ok {
		t.Error("Get(0) should be absent after eviction")
	}
	if v, ok := b.Get(70); !ok || v != 70 {
		t.Errorf("Get(70) = (%d, %v), want (70, true)", v, ok)
	}
	if v, ok := b.Get(7); !ok || v != 7 {
		t.Errorf("Get(7) = (%d, %v), want (7, true)", v, ok)
	}
}

func TestSequenceBufferRemoveUntil(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(0, 0)
	b.Insert(1, 1)
	b.Insert(2, 2)
	b.RemoveUntil(2)

	if _, ok := b.Get(0); ok {
		t.Error("Get(0) should be removed")
	}
	if _, ok := b.Get(1); ok {
		t.Error("Get(1) should be removed")
	}
	if v, ok := b.Get(2); !ok || v != 2 {
		t.Errorf("Get(2) = (%d, %v), want (2, true) — remove_until is exclusive of t itself", v, ok)
	}
}

func TestSequenceBufferInsertTooOldIsDropped(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(0, 0)
	b.Insert(100, 100) // advances the window past tick 0

	if _, ok := b.Get(0); ok {
		t.Error("Get(0) should be dropped, out of window after inserting 100")
	}

	// Inserting an ancient tick now should be a silent no-op, not a panic
	// or error.
	b.Insert(0, -1)
	if v, ok := b.Get(0); ok {
		t.Errorf("Get(0) = (%d, true) after stale re-insert, want absent", v)
	}
}

func TestSequenceBufferWrapBoundary(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(0, 0)
	b.Insert(65535, 65535)

	// 65535 is older than 0 under wrapping order, so it must not evict 0.
	if v, ok := b.Get(65535); !ok || v != 65535 {
		t.Errorf("Get(65535) = (%d, %v), want (65535, true)", v, ok)
	}
	if v, ok := b.Get(0); !ok || v != 0 {
		t.Errorf("Get(0) = (%d, %v), want (0, true)", v, ok)
	}
}

func TestSequenceBufferWrapAdvance(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(65535, 65535)
	b.Insert(0, 0)

	// 0 is newer than 65535 under wrapping order: it must advance
	// sequenceNum, and 65535 must remain retrievable (within the 64-window).
	if b.SequenceNum() != 0 {
		t.Errorf("SequenceNum() = %d, want 0", b.SequenceNum())
	}
	if v, ok := b.Get(65535); !ok || v != 65535 {
		t.Errorf("Get(65535) = (%d, %v), want (65535, true)", v, ok)
	}
	if v, ok := b.Get(0); !ok || v != 0 {
		t.Errorf("Get(0) = (%d, %v), want (0, true)", v, ok)
	}
}

func TestSequenceBufferWrapThenAdvancePastWindow(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(0, 0)
	b.Insert(100, 100)

	// tick 0 is now out of the 64-entry window behind tick 100.
	if _, ok := b.Get(0); ok {
		t.Error("Get(0) should be out of window")
	}
}

func TestSequenceBufferWrapAroundTwelveEntries(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	for tick := 65530; tick <= 65535; tick++ {
		b.Insert(Tick(tick), tick)
	}
	for tick := 0; tick <= 5; tick++ {
		b.Insert(Tick(tick), tick)
	}
	if got := b.GetEntriesCount(); got != 12 {
		t.Fatalf("GetEntriesCount() = %d, want 12", got)
	}

	b.RemoveUntil(65534)
	for _, tick := range []int{65530, 65531, 65532, 65533} {
		if _, ok := b.Get(Tick(tick)); ok {
			t.Errorf("Get(%d) should be removed", tick)
		}
	}
	if _, ok := b.Get(65534); !ok {
		t.Error("Get(65534) should remain present")
	}
	if _, ok := b.Get(65533); ok {
		t.Error("Get(65533) should be absent")
	}
}

func TestSequenceBufferIterOrder(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(10, 10)
	b.Insert(11, 11)
	b.Insert(12, 12)

	asc := b.Iter(false)
	if len(asc) != 3 || asc[0].Tick != 10 || asc[1].Tick != 11 || asc[2].Tick != 12 {
		t.Fatalf("Iter(false) = %+v, want ascending 10,11,12", asc)
	}

	desc := b.Iter(true)
	if len(desc) != 3 || desc[0].Tick != 12 || desc[1].Tick != 11 || desc[2].Tick != 10 {
		t.Fatalf("Iter(true) = %+v, want descending 12,11,10", desc)
	}
}

func TestSequenceBufferGetMutMutatesStoredValue(t *testing.T) {
	b := NewSequenceBuffer[int](64)
	b.Insert(5, 1)
	v, ok := b.GetMut(5)
	if !ok {
		t.Fatal("GetMut(5) missing")
	}
	*v = 42
	if got, _ := b.Get(5); got != 42 {
		t.Errorf("Get(5) = %d after GetMut mutation, want 42", got)
	}
}
