package tagcache

import (
	"io"

	"github.com/rockbox-tools/tagdb/internal/tagcache/byteio"
)

// Status flag bits for an index record's flag word (§3).
const (
	FlagDeleted     uint32 = 0x1
	FlagDircache    uint32 = 0x2
	FlagDirtyNum    uint32 = 0x4
	FlagTrkNumGen   uint32 = 0x8
	FlagResurrected uint32 = 0x10
)

// recordSize is the on-disk size of one index record: 23 u32 slots plus a
// u32 flag word.
const recordSize = int(KindCount)*4 + 4

// IndexEntry is one fixed-size slot in the master index: a vector of
// KindCount tag slots plus a flag word (§4.5).
type IndexEntry struct {
	slots [KindCount]Slot
	Flag  uint32

	siblings map[Kind]*TagFile
}

// NewIndexEntry allocates a fresh record with every slot zeroed and no
// flags set (§4.8 step 2a).
func NewIndexEntry() *IndexEntry {
	return &IndexEntry{}
}

// attachSiblings wires the tag files this entry resolves file-referenced
// slots against. Called by IndexFile on load and on AddEntry.
func (e *IndexEntry) attachSiblings(siblings map[Kind]*TagFile) {
	e.siblings = siblings
}

// SetSlot stores v in k's slot directly.
func (e *IndexEntry) SetSlot(k Kind, v Slot) { e.slots[k] = v }

// Slot returns the raw slot value for k.
func (e *IndexEntry) Slot(k Kind) Slot { return e.slots[k] }

// ParseIndexEntry reads one record: KindCount u32 slots then a u32 flag.
func ParseIndexEntry(r io.Reader, siblings map[Kind]*TagFile, path string) (*IndexEntry, error) {
	e := &IndexEntry{siblings: siblings}
	for k := Kind(0); k < KindCount; k++ {
		v, err := byteio.ReadUint32(r, path)
		if err != nil {
			return nil, err
		}
		e.slots[k] = IntSlot(v)
	}
	flag, err := byteio.ReadUint32(r, path)
	if err != nil {
		return nil, err
	}
	e.Flag = flag
	return e, nil
}

// ToBytes packs the 23 slots and the flag word. Every slot must hold an
// integer; a slot still holding a reference is an UnresolvedReference bug
// (finalize should have converted it first).
func (e *IndexEntry) ToBytes(recordIndex int) ([]byte, error) {
	buf := make([]byte, recordSize)
	for k := Kind(0); k < KindCount; k++ {
		s := e.slots[k]
		if s.IsReference() {
			return nil, &UnresolvedReference{RecordIndex: recordIndex, Kind: k}
		}
		off := int(k) * 4
		putUint32(buf[off:off+4], s.Int())
	}
	putUint32(buf[int(KindCount)*4:], e.Flag)
	return buf, nil
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// Get resolves k's value for display/matching purposes. For a slot
// holding a reference, it returns the referenced entry's payload. For an
// integer file-referenced slot, the sentinel resolves as undefined
// (ok=false), and any other value is looked up by offset in the sibling
// tag file (ok=false if not found or not loaded). For an embedded-numeric slot, 0
// resolves to "undefined" (returned as ok=false) except mtime, where 0 is
// a valid value.
func (e *IndexEntry) Get(k Kind) (value string, numeric uint32, ok bool) {
	s := e.slots[k]
	d, _ := Describe(k)

	if s.IsReference() {
		return s.Reference().Value, 0, true
	}

	if d.Storage == FileReferenced {
		if s.Int() == Sentinel {
			return "", 0, false
		}
		tf, hasTF := e.siblings[k]
		if !hasTF {
			return "", 0, false
		}
		entry, found := tf.FindByOffset(int64(s.Int()))
		if !found {
			return "", 0, false
		}
		return entry.Value, 0, true
	}

	if s.Int() == 0 && k != MTime {
		return "", 0, false
	}
	return "", s.Int(), true
}

// GetString is a convenience wrapper over Get for file-referenced kinds.
func (e *IndexEntry) GetString(k Kind) (string, bool) {
	v, _, ok := e.Get(k)
	return v, ok
}

// GetNumeric is a convenience wrapper over Get for embedded-numeric kinds.
func (e *IndexEntry) GetNumeric(k Kind) (uint32, bool) {
	_, n, ok := e.Get(k)
	return n, ok
}

// HasFlag reports whether bit is set in the flag word.
func (e *IndexEntry) HasFlag(bit uint32) bool { return e.Flag&bit != 0 }

// DircacheIndex extracts the cache index from the flag word's high 16
// bits, valid only when FlagDircache is set.
func (e *IndexEntry) DircacheIndex() (uint32, bool) {
	if !e.HasFlag(FlagDircache) {
		return 0, false
	}
	return (e.Flag >> 16) & 0xFFFF, true
}
