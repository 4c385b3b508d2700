package tagcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rockbox-tools/tagdb/pkg/util"
)

// SortMap supplies a per-kind sort tiebreak, overriding the default
// case-folded string order an emitted tag file is sorted by.
type SortMap map[Kind]Tiebreak

// WriteOptions configures WriteDatabase.
type WriteOptions struct {
	// AutoFinalize runs Finalize after the sibling tag files are emitted
	// and before the master index is written. Disable only to exercise
	// the pure round-trip law (spec §8): write(read(D)) == D.
	AutoFinalize bool
	// Sort supplies per-kind tiebreak sub-maps for TagFile.Emit.
	Sort SortMap
}

// WriteDatabase is the ordering protocol that produces a self-consistent
// on-disk set (§4.7): back up any existing output, emit every sibling tag
// file (assigning their entries' offsets), finalize index records against
// those freshly-assigned offsets, then emit the master index.
func WriteDatabase(idx *IndexFile, outDir string, opts WriteOptions) error {
	if err := prepareOutputDir(outDir); err != nil {
		return err
	}

	for _, k := range FileReferencedKinds {
		tf, ok := idx.siblings[k]
		if !ok {
			continue
		}
		d, err := Describe(k)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, d.Filename)

		var tiebreak Tiebreak
		if opts.Sort != nil {
			tiebreak = opts.Sort[k]
		}
		if err := tf.Emit(outPath, tiebreak); err != nil {
			return err
		}
	}

	if opts.AutoFinalize {
		Finalize(idx)
	}

	return idx.Emit(filepath.Join(outDir, IndexFilename))
}

// Finalize converts every index record's file-referenced slots from
// references into integer offsets (§4.7). For a slot still holding a
// reference, it resolves to the referenced entry's OffsetInFile (the
// sentinel, if that was somehow never assigned — a caller bug worth
// logging, never a hard failure). For a slot holding the integer 0, it
// writes the sentinel: a zero tag_seek is "uninitialized", not a valid
// offset. Any other integer is left untouched.
func Finalize(idx *IndexFile) {
	for _, entry := range idx.Entries {
		for _, k := range FileReferencedKinds {
			s := entry.Slot(k)
			switch {
			case s.IsReference():
				target := s.Reference()
				if target.OffsetInFile < 0 {
					entry.SetSlot(k, IntSlot(Sentinel))
					continue
				}
				entry.SetSlot(k, IntSlot(uint32(target.OffsetInFile)))
			case s.Int() == 0:
				entry.SetSlot(k, IntSlot(Sentinel))
			}
		}
	}
}

// prepareOutputDir ensures outDir exists, relocating any pre-existing
// database*.tcd files into a sibling .backup/ directory so a failed write
// never destroys the prior database (§4.7, §9 Design Notes' "scoped
// filesystem guard").
func prepareOutputDir(outDir string) error {
	if err := util.EnsureDirectoryExists(outDir); err != nil {
		return &IoError{Path: outDir, Cause: err}
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return &IoError{Path: outDir, Cause: err}
	}

	var toBackup []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) >= len("database") && name[:len("database")] == "database" && filepath.Ext(name) == ".tcd" {
			toBackup = append(toBackup, name)
		}
	}
	if len(toBackup) == 0 {
		return nil
	}

	backupDir := filepath.Join(outDir, ".backup")
	for _, name := range toBackup {
		src := filepath.Join(outDir, name)
		dst := filepath.Join(backupDir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), name))
		if err := util.RelocateFile(src, dst); err != nil {
			return &IoError{Path: src, Cause: err}
		}
	}
	return nil
}
