package tagcache

// Slot is a tagged union modeling the state of one file-referenced index
// slot during editing: an already-resolved integer offset/value, or a
// non-owning reference to a TagFileEntry that finalize must convert to an
// offset before emit (§4.5, §9 Design Notes).
//
// Embedded-numeric slots only ever hold an IntSlot; a RefSlot is reachable
// only for file-referenced kinds between Add and finalize.
type Slot struct {
	ref *Entry // non-nil: state (b), a pre-emit reference
	val uint32 // meaningful when ref == nil: state (a)/(c), an integer
}

// IntSlot wraps an already-resolved integer (an on-disk offset for
// file-referenced kinds, or a raw numeric datum for embedded-numeric
// kinds).
func IntSlot(v uint32) Slot { return Slot{val: v} }

// RefSlot wraps a reference to a TagFileEntry whose offset is not yet
// known. Only valid for file-referenced kinds.
func RefSlot(e *Entry) Slot { return Slot{ref: e} }

// IsReference reports whether the slot still holds a pre-emit reference.
func (s Slot) IsReference() bool { return s.ref != nil }

// Reference returns the referenced entry, or nil if the slot holds an
// integer.
func (s Slot) Reference() *Entry { return s.ref }

// Int returns the slot's integer value. Calling this on a slot that still
// holds a reference is a caller bug; use IsReference to check first.
func (s Slot) Int() uint32 { return s.val }
