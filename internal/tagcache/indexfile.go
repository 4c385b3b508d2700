package tagcache

import (
	"os"
	"path/filepath"

	"github.com/rockbox-tools/tagdb/internal/tagcache/byteio"
)

// IndexFilename is the master index file's conventional on-disk name.
const IndexFilename = "database_idx.tcd"

// masterHeaderSize is the 24-byte master header: magic, datasize,
// entry_count, serial, commitid, dirty.
const masterHeaderSize = 24

// IndexFile is the master file: header + N index entries, owning a
// dictionary of TagFile siblings keyed by tag kind (§4.6).
type IndexFile struct {
	Magic      uint32
	DataSize   uint32
	EntryCount uint32
	Serial     uint32
	CommitID   uint32
	Dirty      uint32

	Entries  []*IndexEntry
	siblings map[Kind]*TagFile
}

// NewIndexFile builds an empty index with an empty TagFile sibling
// installed for each of the 10 file-referenced kinds (§4.8 step 1).
func NewIndexFile() *IndexFile {
	idx := &IndexFile{
		Magic:    Magic,
		siblings: make(map[Kind]*TagFile, len(FileReferencedKinds)),
	}
	for _, k := range FileReferencedKinds {
		idx.siblings[k] = NewTagFile(k)
	}
	return idx
}

// Siblings returns the sibling TagFile dictionary, keyed by tag kind.
func (idx *IndexFile) Siblings() map[Kind]*TagFile { return idx.siblings }

// SiblingFilePath resolves kind's conventional file path next to dir.
func SiblingFilePath(dir string, k Kind) (string, error) {
	d, err := Describe(k)
	if err != nil {
		return "", err
	}
	if d.Storage != FileReferenced {
		return "", &UnknownTag{NameOrIndex: k.String()}
	}
	return filepath.Join(dir, d.Filename), nil
}

// LoadOptions controls which siblings LoadIndexFile opens.
type LoadOptions struct {
	// Kinds restricts which sibling tag files are opened. A nil slice
	// loads all 10 file-referenced kinds.
	Kinds []Kind
	// Required siblings whose absence is a MissingSibling error rather
	// than a silently-absent lookup table. A nil slice means all
	// requested kinds are required.
	Required []Kind
}

// LoadIndexFile loads the master index at path, opening its requested
// sibling tag files first (so index records can attach them for
// string resolution), then parsing the header and records (§4.6).
func LoadIndexFile(path string, opts *LoadOptions) (*IndexFile, error) {
	dir := filepath.Dir(path)

	kinds := FileReferencedKinds
	requiredList := kinds
	if opts != nil {
		if opts.Kinds != nil {
			kinds = opts.Kinds
			requiredList = kinds
		}
		if opts.Required != nil {
			requiredList = opts.Required
		}
	}
	required := make(map[Kind]bool, len(requiredList))
	for _, k := range requiredList {
		required[k] = true
	}

	siblings := make(map[Kind]*TagFile, len(kinds))
	for _, k := range kinds {
		sibPath, err := SiblingFilePath(dir, k)
		if err != nil {
			return nil, err
		}
		tf, err := LoadTagFile(sibPath, k)
		if err != nil {
			if os.IsNotExist(unwrapIo(err)) {
				if required[k] {
					return nil, &MissingSibling{Kind: k, ExpectedPath: sibPath}
				}
				continue
			}
			return nil, err
		}
		siblings[k] = tf
	}

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
	serial, err := byteio.ReadUint32(f, path)
	if err != nil {
		return nil, err
	}
	commitID, err := byteio.ReadUint32(f, path)
	if err != nil {
		return nil, err
	}
	dirty, err := byteio.ReadUint32(f, path)
	if err != nil {
		return nil, err
	}

	idx := &IndexFile{
		Magic:      magic,
		DataSize:   dataSize,
		EntryCount: entryCount,
		Serial:     serial,
		CommitID:   commitID,
		Dirty:      dirty,
		Entries:    make([]*IndexEntry, 0, entryCount),
		siblings:   siblings,
	}

	for i := uint32(0); i < entryCount; i++ {
		entry, err := ParseIndexEntry(f, siblings, path)
		if err != nil {
			return nil, err
		}
		idx.Entries = append(idx.Entries, entry)
	}

	return idx, nil
}

// unwrapIo peels an *IoError (as produced by LoadTagFile) down to the
// underlying os error so os.IsNotExist can classify it.
func unwrapIo(err error) error {
	if ioErr, ok := err.(*IoError); ok {
		return ioErr.Cause
	}
	return err
}

// AddEntry appends entry to the index and attaches the siblings
// dictionary so Get() can resolve its file-referenced slots.
func (idx *IndexFile) AddEntry(entry *IndexEntry) {
	entry.attachSiblings(idx.siblings)
	idx.Entries = append(idx.Entries, entry)
}

// Emit writes the master index to path. DataSize is computed per §3: the
// 24-byte header, plus every record's size, plus every sibling's
// DataSize except the filename tag file's — an exclusion observed from
// reference binaries and reproduced verbatim (spec Open Question #1).
func (idx *IndexFile) Emit(path string) error {
	idx.EntryCount = uint32(len(idx.Entries))

	total := uint32(masterHeaderSize) + idx.EntryCount*uint32(recordSize)
	for k, tf := range idx.siblings {
		if k == Filename {
			continue
		}
		total += tf.DataSize
	}
	idx.DataSize = total

	f, err := os.Create(path)
	if err != nil {
		return &IoError{Path: path, Cause: err}
	}
	defer f.Close()

	for _, v := range []uint32{idx.Magic, idx.DataSize, idx.EntryCount, idx.Serial, idx.CommitID, idx.Dirty} {
		if err := byteio.WriteUint32(f, v); err != nil {
			return &IoError{Path: path, Cause: err}
		}
	}

	for i, entry := range idx.Entries {
		buf, err := entry.ToBytes(i)
		if err != nil {
			return err
		}
		if _, err := f.Write(buf); err != nil {
			return &IoError{Path: path, Cause: err}
		}
	}

	return nil
}
