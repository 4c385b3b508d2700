package tagcache

import (
	"os"
	"sort"
	"strings"

	"github.com/rockbox-tools/tagdb/internal/tagcache/byteio"
)

// headerSize is the 12-byte tag-file header: magic, datasize, entry_count.
const headerSize = 12

// TagFile is a collection of entries sharing one magic, one file name, and
// a uniqueness policy (§4.4).
type TagFile struct {
	Kind       Kind
	Magic      uint32
	DataSize   uint32
	EntryCount uint32

	entries  []*Entry
	byOffset map[int64]*Entry
	byKey    map[string]*Entry
}

// NewTagFile creates an empty tag file for kind.
func NewTagFile(kind Kind) *TagFile {
	return &TagFile{
		Kind:     kind,
		Magic:    Magic,
		byOffset: make(map[int64]*Entry),
		byKey:    make(map[string]*Entry),
	}
}

// LoadTagFile reads a tag file from path.
func LoadTagFile(path string, kind Kind) (*TagFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Cause: err}
	}
	defer f.Close()

	magic, err := byteio.ReadUint32(f, path)
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &MagicMismatch{Path: path, Expected: Magic, Got: magic}
	}
	dataSize, err := byteio.ReadUint32(f, path)
	if err != nil {
		return nil, err
	}
	entryCount, err := byteio.ReadUint32(f, path)
	if err != nil {
		return nil, err
	}

	tf := &TagFile{
		Kind:       kind,
		Magic:      magic,
		DataSize:   dataSize,
		EntryCount: entryCount,
		entries:    make([]*Entry, 0, entryCount),
		byOffset:   make(map[int64]*Entry, entryCount),
		byKey:      make(map[string]*Entry, entryCount),
	}

	for i := uint32(0); i < entryCount; i++ {
		entry, err := ParseEntry(f, kind, path)
		if err != nil {
			return nil, err
		}
		tf.entries = append(tf.entries, entry)
		tf.byOffset[entry.OffsetInFile] = entry
		if _, ok := tf.byKey[entry.key()]; !ok {
			tf.byKey[entry.key()] = entry
		}
	}

	return tf, nil
}

// Len returns the number of entries currently held.
func (tf *TagFile) Len() int { return len(tf.entries) }

// Entries returns the entries in their current (insertion or last-emit)
// order. The slice is owned by TagFile; callers must not mutate it.
func (tf *TagFile) Entries() []*Entry { return tf.entries }

// FindByOffset looks up an entry by its last-known on-disk byte offset.
func (tf *TagFile) FindByOffset(offset int64) (*Entry, bool) {
	e, ok := tf.byOffset[offset]
	return e, ok
}

// FindByKey looks up an entry by its de-duplication key (case-folded
// payload, or raw payload for duplicate-allowed kinds).
func (tf *TagFile) FindByKey(key string) (*Entry, bool) {
	e, ok := tf.byKey[key]
	return e, ok
}

// Add is the unique insertion point for new tag strings: get-or-insert by
// key. A repeat of an existing (case-folded, unless duplicates are
// allowed) string returns the previously stored entry rather than growing
// the entry list.
func (tf *TagFile) Add(entry *Entry) *Entry {
	d, _ := Describe(tf.Kind)
	key := entry.key()
	if existing, ok := tf.byKey[key]; ok {
		if !d.DuplicatesAllowed {
			return existing
		}
	} else {
		tf.byKey[key] = entry
	}
	tf.entries = append(tf.entries, entry)
	if entry.OffsetInFile >= 0 {
		tf.byOffset[entry.OffsetInFile] = entry
	}
	return entry
}

// removeMatching drops every entry for which drop returns true, and
// rebuilds the by-key lookup. Used by the genre canonicalizer's post-pass
// cleanup of legacy multi-value strings (§4.9 step 8).
func (tf *TagFile) removeMatching(drop func(*Entry) bool) int {
	kept := tf.entries[:0]
	removed := 0
	for _, e := range tf.entries {
		if drop(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	tf.entries = kept

	tf.byKey = make(map[string]*Entry, len(tf.entries))
	for _, e := range tf.entries {
		if _, ok := tf.byKey[e.key()]; !ok {
			tf.byKey[e.key()] = e
		}
	}
	return removed
}

// RemoveMultiValueLegacyStrings strips any genre entry whose payload still
// contains a ';' separator — these are never a canonical form once
// canonicalization has run (§4.9 step 8).
func (tf *TagFile) RemoveMultiValueLegacyStrings() int {
	return tf.removeMatching(func(e *Entry) bool {
		return strings.Contains(e.Value, ";")
	})
}

// Tiebreak maps an entry's string payload to the key used to sort it,
// overriding the default case-folded-string order.
type Tiebreak map[string]string

// Emit writes the tag file to path, sorting entries (unless this is the
// filename kind, which preserves insertion order) and assigning each
// entry's OffsetInFile to the position at which it was actually written.
func (tf *TagFile) Emit(path string, tiebreak Tiebreak) error {
	d, err := Describe(tf.Kind)
	if err != nil {
		return err
	}

	tf.EntryCount = uint32(len(tf.entries))
	var total int
	for _, e := range tf.entries {
		total += e.Size()
	}
	tf.DataSize = uint32(total)

	tf.byOffset = make(map[int64]*Entry, len(tf.entries))
	tf.byKey = make(map[string]*Entry, len(tf.entries))

	if !d.IsFilenameDB {
		sort.SliceStable(tf.entries, func(i, j int) bool {
			return sortKey(tf.entries[i], tiebreak) < sortKey(tf.entries[j], tiebreak)
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return &IoError{Path: path, Cause: err}
	}
	defer f.Close()

	if err := byteio.WriteUint32(f, tf.Magic); err != nil {
		return &IoError{Path: path, Cause: err}
	}
	if err := byteio.WriteUint32(f, tf.DataSize); err != nil {
		return &IoError{Path: path, Cause: err}
	}
	if err := byteio.WriteUint32(f, tf.EntryCount); err != nil {
		return &IoError{Path: path, Cause: err}
	}

	offset := int64(headerSize)
	for _, e := range tf.entries {
		e.OffsetInFile = offset
		if _, err := f.Write(e.ToBytes()); err != nil {
			return &IoError{Path: path, Cause: err}
		}
		tf.byOffset[offset] = e
		if _, ok := tf.byKey[e.key()]; !ok {
			tf.byKey[e.key()] = e
		}
		offset += int64(e.Size())
	}

	return nil
}

func sortKey(e *Entry, tiebreak Tiebreak) string {
	if tiebreak != nil {
		if k, ok := tiebreak[e.Value]; ok {
			return k
		}
	}
	return strings.ToLower(e.Value)
}
