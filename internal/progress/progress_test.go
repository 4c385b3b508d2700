package progress

import "testing"

func TestNopDiscardsEverything(t *testing.T) {
	// Nop must be safe to call with any kind/payload combination.
	Nop(KindProgress, 50)
	Nop(KindMessage, "hello")
	Nop(KindError, "boom")
	Nop(KindAdd, nil)
}

func TestCLIAdapterCallbackHandlesProgressKind(t *testing.T) {
	a := NewCLIAdapter(10, "test")
	cb := a.Callback()

	// Should not panic on a valid progress payload or on the GUI-only kinds
	// it's documented to ignore.
	cb(KindProgress, 3)
	cb(KindAdd, "ignored")
	if err := a.Finish(); err != nil {
		t.Errorf("Finish: %v", err)
	}
}
