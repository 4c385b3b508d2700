package tagcache

import "fmt"

// IoError wraps a disk read/write failure with the path it happened on.
type IoError struct {
	Path  string
	Cause error
}

func (e *IoError) Error() string { return fmt.Sprintf("tagcache: io error on %s: %v", e.Path, e.Cause) }
func (e *IoError) Unwrap() error { return e.Cause }

// MagicMismatch is returned when a loaded file's first four bytes are not
// the tagcache magic constant.
type MagicMismatch struct {
	Path     string
	Expected uint32
	Got      uint32
}

func (e *MagicMismatch) Error() string {
	return fmt.Sprintf("tagcache: %s: bad magic, expected 0x%08X got 0x%08X", e.Path, e.Expected, e.Got)
}

// MissingSibling is returned when a required tag file is not adjacent to
// the master index during load.
type MissingSibling struct {
	Kind         Kind
	ExpectedPath string
}

func (e *MissingSibling) Error() string {
	return fmt.Sprintf("tagcache: missing sibling tag file for %s at %s", e.Kind, e.ExpectedPath)
}

// UnresolvedReference is returned when an index record is emitted
// (IndexEntry.ToBytes) while one of its slots still holds a reference,
// i.e. Finalize has not converted it to an offset. Finalize itself never
// returns it.
type UnresolvedReference struct {
	RecordIndex int
	Kind        Kind
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("tagcache: record %d: unresolved reference in %s slot", e.RecordIndex, e.Kind)
}

// UnknownTag is returned by taxonomy lookups that miss.
type UnknownTag struct {
	NameOrIndex string
}

func (e *UnknownTag) Error() string {
	return fmt.Sprintf("tagcache: unknown tag %q", e.NameOrIndex)
}

// DecodeError is returned when an entry payload is neither valid UTF-8 nor
// the 40-byte legacy comment shape.
type DecodeError struct {
	Kind     Kind
	BytesLen int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tagcache: cannot decode %s payload of %d bytes", e.Kind, e.BytesLen)
}

// YamlParseError is returned when a genre-hierarchy file is malformed.
type YamlParseError struct {
	Path  string
	Line  int
	Cause error
}

func (e *YamlParseError) Error() string {
	return fmt.Sprintf("tagcache: %s:%d: %v", e.Path, e.Line, e.Cause)
}
func (e *YamlParseError) Unwrap() error { return e.Cause }
