package tagcache

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rockbox-tools/tagdb/internal/tagcache/byteio"
)

// entryChunkLength is the padding boundary (bytes) every tag file entry's
// payload is rounded up to, except in the filename tag file.
const entryChunkLength = 8

// entryFiller is the byte tagcache.c uses to pad unused payload space.
const entryFiller = 'X'

// Entry is one variable-length record inside a tag file: an 8-byte header
// (tag_length, idx_id) followed by a null-terminated UTF-8 string and
// trailing filler padding.
type Entry struct {
	Kind         Kind
	Value        string
	IdxID        uint32
	OffsetInFile int64 // -1 until written or loaded
}

// NewEntry builds an entry for kind with the sentinel idx_id.
func NewEntry(kind Kind, value string) *Entry {
	return &Entry{Kind: kind, Value: value, IdxID: Sentinel, OffsetInFile: -1}
}

// key returns the de-duplication key for this entry: the payload,
// case-folded unless the kind allows duplicates (title), in which case it
// is the raw payload and TagFile.Add never folds such entries together.
func (e *Entry) key() string {
	d, _ := Describe(e.Kind)
	if d.DuplicatesAllowed {
		return e.Value
	}
	return strings.ToLower(e.Value)
}

// paddedLength is the tag_length field value: the null-terminated payload
// length, rounded up to entryChunkLength unless this is the filename kind.
func (e *Entry) paddedLength() int {
	d, _ := Describe(e.Kind)
	raw := len(e.Value) + 1
	if d.IsFilenameDB {
		return raw
	}
	if raw%entryChunkLength == 0 {
		return raw
	}
	return ((raw / entryChunkLength) + 1) * entryChunkLength
}

// Size is the total on-disk byte size of the entry: its 8-byte header plus
// the padded payload.
func (e *Entry) Size() int {
	return e.paddedLength() + 8
}

// ToBytes encodes the entry's on-disk representation.
func (e *Entry) ToBytes() []byte {
	padded := e.paddedLength()
	buf := make([]byte, 8+padded)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(padded))
	binary.LittleEndian.PutUint32(buf[4:8], e.IdxID)

	copy(buf[8:], e.Value)
	buf[8+len(e.Value)] = 0
	for i := 8 + len(e.Value) + 1; i < len(buf); i++ {
		buf[i] = entryFiller
	}
	return buf
}

// ParseEntry reads one entry of the given kind from r, which must be
// positioned at the start of the entry's 8-byte header. path is used only
// for error messages.
func ParseEntry(r io.ReadSeeker, kind Kind, path string) (*Entry, error) {
	offset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, &IoError{Path: path, Cause: err}
	}

	tagLength, err := byteio.ReadUint32(r, path)
	if err != nil {
		return nil, err
	}
	idxID, err := byteio.ReadUint32(r, path)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, tagLength)
	n, err := io.ReadFull(r, payload)
	if err != nil {
		return nil, &byteio.ShortRead{Path: path, Expected: int(tagLength), Got: n}
	}

	value, err := decodePayload(payload, kind)
	if err != nil {
		return nil, err
	}

	return &Entry{Kind: kind, Value: value, IdxID: idxID, OffsetInFile: offset}, nil
}

// decodePayload splits payload at its first null byte and UTF-8 decodes
// the prefix. The comment kind has a legacy-compatibility branch: if the
// pre-null prefix is exactly 40 bytes and is not valid UTF-8, it is
// reinterpreted as ten little-endian uint32 words rendered as
// space-separated uppercase hex.
func decodePayload(payload []byte, kind Kind) (string, error) {
	nullIdx := -1
	for i, b := range payload {
		if b == 0 {
			nullIdx = i
			break
		}
	}
	prefix := payload
	if nullIdx != -1 {
		prefix = payload[:nullIdx]
	}

	if utf8.Valid(prefix) {
		return string(prefix), nil
	}

	if kind == Comment && len(prefix) == 40 {
		var words [10]uint32
		for i := 0; i < 10; i++ {
			words[i] = binary.LittleEndian.Uint32(prefix[i*4 : i*4+4])
		}
		parts := make([]string, 10)
		for i, w := range words {
			parts[i] = fmt.Sprintf("%08X", w)
		}
		return strings.Join(parts, " "), nil
	}

	return "", &DecodeError{Kind: kind, BytesLen: len(prefix)}
}
