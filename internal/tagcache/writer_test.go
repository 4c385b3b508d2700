package tagcache

import (
	"os"
	"path/filepath"
	"testing"
)

func buildSampleIndex() *IndexFile {
	idx := NewIndexFile()

	e := NewIndexEntry()
	e.SetSlot(Year, IntSlot(1999))
	e.SetSlot(MTime, IntSlot(12345))

	artist := idx.Siblings()[Artist].Add(NewEntry(Artist, "Rush"))
	e.SetSlot(Artist, RefSlot(artist))
	title := idx.Siblings()[Title].Add(NewEntry(Title, "Tom Sawyer"))
	e.SetSlot(Title, RefSlot(title))
	filename := idx.Siblings()[Filename].Add(NewEntry(Filename, "/music/rush/tom_sawyer.mp3"))
	e.SetSlot(Filename, RefSlot(filename))

	idx.AddEntry(e)
	return idx
}

func TestWriteDatabaseAutoFinalizeResolvesReferences(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()

	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	reloaded, err := LoadIndexFile(filepath.Join(dir, IndexFilename), nil)
	if err != nil {
		t.Fatalf("LoadIndexFile: %v", err)
	}
	if len(reloaded.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(reloaded.Entries))
	}
	artist, ok := reloaded.Entries[0].GetString(Artist)
	if !ok || artist != "Rush" {
		t.Errorf("expected artist %q, got (%q, %v)", "Rush", artist, ok)
	}
}

func TestWriteDatabaseDataSizeExcludesFilenameSibling(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()

	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	filenameTF := idx.Siblings()[Filename]
	if filenameTF.DataSize == 0 {
		t.Fatal("expected the filename sibling to have a non-zero data size after emit")
	}

	want := uint32(masterHeaderSize) + idx.EntryCount*uint32(recordSize)
	for k, tf := range idx.Siblings() {
		if k == Filename {
			continue
		}
		want += tf.DataSize
	}
	if idx.DataSize != want {
		t.Errorf("got DataSize %d, want %d (filename sibling excluded)", idx.DataSize, want)
	}
}

func TestFinalizeConvertsZeroIntSlotToSentinel(t *testing.T) {
	idx := NewIndexFile()
	e := NewIndexEntry()
	e.SetSlot(Artist, IntSlot(0))
	idx.AddEntry(e)

	Finalize(idx)

	if e.Slot(Artist).Int() != Sentinel {
		t.Errorf("expected a zero file-referenced slot to finalize to the sentinel, got %d", e.Slot(Artist).Int())
	}
}

func TestWriteDatabaseBacksUpExistingFiles(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()
	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("first WriteDatabase: %v", err)
	}

	idx2 := buildSampleIndex()
	if err := WriteDatabase(idx2, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("second WriteDatabase: %v", err)
	}

	backupDir := filepath.Join(dir, ".backup")
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("expected a .backup directory: %v", err)
	}
	if len(entries) == 0 {
		t.Error("expected the prior database files to be relocated into .backup")
	}
}

func TestWriteDatabaseRoundTripWithoutAutoFinalize(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()
	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	reloaded, err := LoadIndexFile(filepath.Join(dir, IndexFilename), nil)
	if err != nil {
		t.Fatalf("LoadIndexFile: %v", err)
	}

	dir2 := t.TempDir()
	if err := WriteDatabase(reloaded, dir2, WriteOptions{AutoFinalize: false}); err != nil {
		t.Fatalf("re-WriteDatabase: %v", err)
	}

	a, err := os.ReadFile(filepath.Join(dir, IndexFilename))
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir2, IndexFilename))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("expected write(read(D)) to be byte-identical to D")
	}
}
