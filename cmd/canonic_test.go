package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rockbox-tools/tagdb/internal/tagcache"
)

func TestRunCanonicRewritesGenreSlot(t *testing.T) {
	musicDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(musicDir, "track.mp3"), []byte("not real audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	inDir := filepath.Join(t.TempDir(), "in")
	if err := runBuild(musicDir, "/MUSIC", inDir); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	idx, err := tagcache.LoadIndexFile(filepath.Join(inDir, tagcache.IndexFilename), nil)
	if err != nil {
		t.Fatalf("LoadIndexFile: %v", err)
	}
	genreTF := idx.Siblings()[tagcache.Genre]
	entry := genreTF.Add(tagcache.NewEntry(tagcache.Genre, "death metal; pop"))
	idx.Entries[0].SetSlot(tagcache.Genre, tagcache.RefSlot(entry))
	if err := tagcache.WriteDatabase(idx, inDir, tagcache.WriteOptions{AutoFinalize: true}); err != nil {
		t.Fatalf("WriteDatabase: %v", err)
	}

	genreFile := filepath.Join(t.TempDir(), "genres.yaml")
	if err := os.WriteFile(genreFile, []byte("- Metal:\n  - Death Metal\n- Pop\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	canonicGenreCount = 0
	canonicDryRun = false
	if err := runCanonic(inDir, outDir, genreFile); err != nil {
		t.Fatalf("runCanonic: %v", err)
	}

	reloaded, err := tagcache.LoadIndexFile(filepath.Join(outDir, tagcache.IndexFilename), nil)
	if err != nil {
		t.Fatalf("LoadIndexFile after canonic: %v", err)
	}
	genre, ok := reloaded.Entries[0].GetString(tagcache.Genre)
	if !ok {
		t.Fatal("expected a genre slot to be set after canonicalization")
	}
	if genre != "Death Metal" {
		t.Errorf("got genre %q, want %q", genre, "Death Metal")
	}
}

func TestRunCanonicDryRunWritesNothing(t *testing.T) {
	musicDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(musicDir, "track.mp3"), []byte("not real audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	inDir := filepath.Join(t.TempDir(), "in")
	if err := runBuild(musicDir, "/MUSIC", inDir); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	genreFile := filepath.Join(t.TempDir(), "genres.yaml")
	if err := os.WriteFile(genreFile, []byte("- Metal\n- Pop\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	canonicGenreCount = 0
	canonicDryRun = true
	defer func() { canonicDryRun = false }()
	if err := runCanonic(inDir, outDir, genreFile); err != nil {
		t.Fatalf("runCanonic: %v", err)
	}

	if _, err := os.Stat(outDir); err == nil {
		t.Error("expected --dry-run not to create the output directory")
	}
}
