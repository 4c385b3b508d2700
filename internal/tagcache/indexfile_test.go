package tagcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSiblingFilePathRejectsEmbeddedNumericKind(t *testing.T) {
	if _, err := SiblingFilePath("/tmp", Year); err == nil {
		t.Fatal("expected an error for an embedded-numeric kind")
	}
}

func TestSiblingFilePathJoinsConventionalName(t *testing.T) {
	got, err := SiblingFilePath("/db", Artist)
	if err != nil {
		t.Fatalf("SiblingFilePath: %v", err)
	}
	d, _ := Describe(Artist)
	want := filepath.Join("/db", d.Filename)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoadIndexFileMissingRequiredSibling(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()
	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	artistPath, _ := SiblingFilePath(dir, Artist)
	if err := os.Remove(artistPath); err != nil {
		t.Fatalf("removing artist sibling: %v", err)
	}

	_, err := LoadIndexFile(filepath.Join(dir, IndexFilename), nil)
	if _, ok := err.(*MissingSibling); !ok {
		t.Fatalf("expected a *MissingSibling error, got %v (%T)", err, err)
	}
}

func TestLoadIndexFileOptionalSiblingAbsentIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()
	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	artistPath, _ := SiblingFilePath(dir, Artist)
	if err := os.Remove(artistPath); err != nil {
		t.Fatalf("removing artist sibling: %v", err)
	}

	reloaded, err := LoadIndexFile(filepath.Join(dir, IndexFilename), &LoadOptions{
		Kinds:    FileReferencedKinds,
		Required: []Kind{Title, Filename},
	})
	if err != nil {
		t.Fatalf("LoadIndexFile: %v", err)
	}
	if _, ok := reloaded.Entries[0].GetString(Artist); ok {
		t.Error("expected the artist reference to be unresolved once its sibling file is missing")
	}
}

func TestLoadIndexFileRestrictsToRequestedKinds(t *testing.T) {
	dir := t.TempDir()
	idx := buildSampleIndex()
	if err := WriteDatabase(idx, dir, WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	reloaded, err := LoadIndexFile(filepath.Join(dir, IndexFilename), &LoadOptions{
		Kinds: []Kind{Title, Filename},
	})
	if err != nil {
		t.Fatalf("LoadIndexFile: %v", err)
	}
	if len(reloaded.Siblings()) != 2 {
		t.Errorf("expected exactly 2 loaded siblings, got %d", len(reloaded.Siblings()))
	}
	if _, ok := reloaded.Siblings()[Artist]; ok {
		t.Error("expected the artist sibling not to be loaded when it wasn't requested")
	}
}

func TestAddEntryAttachesSiblingsForResolution(t *testing.T) {
	idx := NewIndexFile()
	artist := idx.Siblings()[Artist].Add(NewEntry(Artist, "Rush"))
	e := NewIndexEntry()
	e.SetSlot(Artist, RefSlot(artist))

	idx.AddEntry(e)

	v, ok := idx.Entries[0].GetString(Artist)
	if !ok || v != "Rush" {
		t.Errorf("got (%q, %v), want (%q, true)", v, ok, "Rush")
	}
}
