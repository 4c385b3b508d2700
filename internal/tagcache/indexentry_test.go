package tagcache

import "testing"

func TestIndexEntryToBytesFailsOnUnresolvedReference(t *testing.T) {
	e := NewIndexEntry()
	e.SetSlot(Artist, RefSlot(NewEntry(Artist, "Rush")))

	if _, err := e.ToBytes(0); err == nil {
		t.Fatal("expected an UnresolvedReference error")
	} else if _, ok := err.(*UnresolvedReference); !ok {
		t.Errorf("expected *UnresolvedReference, got %T", err)
	}
}

func TestIndexEntryToBytesSucceedsAfterResolution(t *testing.T) {
	e := NewIndexEntry()
	e.SetSlot(Artist, IntSlot(100))
	e.SetSlot(Year, IntSlot(2001))

	buf, err := e.ToBytes(0)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if len(buf) != recordSize {
		t.Errorf("got %d bytes, want %d", len(buf), recordSize)
	}
}

func TestIndexEntryGetEmbeddedNumericZeroIsUndefinedExceptMTime(t *testing.T) {
	e := NewIndexEntry()
	e.SetSlot(Year, IntSlot(0))
	e.SetSlot(MTime, IntSlot(0))

	if _, ok := e.GetNumeric(Year); ok {
		t.Error("Year slot of 0 should resolve as undefined (ok=false)")
	}
	if v, ok := e.GetNumeric(MTime); !ok || v != 0 {
		t.Errorf("MTime slot of 0 is a valid value, got (%d, %v)", v, ok)
	}
}

func TestIndexEntryGetFileReferencedSentinelIsUndefined(t *testing.T) {
	e := NewIndexEntry()
	e.SetSlot(Artist, IntSlot(Sentinel))
	if _, ok := e.GetString(Artist); ok {
		t.Error("a sentinel-valued file-referenced slot should resolve as undefined")
	}
}

func TestIndexEntryGetResolvesThroughSiblingTagFile(t *testing.T) {
	tf := NewTagFile(Artist)
	stored := tf.Add(NewEntry(Artist, "Rush"))
	stored.OffsetInFile = 12
	tf.byOffset[12] = stored

	e := NewIndexEntry()
	e.attachSiblings(map[Kind]*TagFile{Artist: tf})
	e.SetSlot(Artist, IntSlot(12))

	v, ok := e.GetString(Artist)
	if !ok || v != "Rush" {
		t.Errorf("expected to resolve to %q, got (%q, %v)", "Rush", v, ok)
	}
}

func TestIndexEntryHasFlagAndDircacheIndex(t *testing.T) {
	e := NewIndexEntry()
	e.Flag = FlagDircache | (uint32(5) << 16)

	if !e.HasFlag(FlagDircache) {
		t.Error("expected FlagDircache to be set")
	}
	idx, ok := e.DircacheIndex()
	if !ok || idx != 5 {
		t.Errorf("got (%d, %v), want (5, true)", idx, ok)
	}

	e2 := NewIndexEntry()
	if _, ok := e2.DircacheIndex(); ok {
		t.Error("DircacheIndex should report false when FlagDircache is unset")
	}
}
