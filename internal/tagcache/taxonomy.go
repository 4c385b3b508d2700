package tagcache

import "fmt"

// Kind is one of the 23 tag kinds Rockbox's tagcache understands, numbered
// 0..22 exactly as tagcache.c's enum tag_type does.
type Kind int

const (
	Artist Kind = iota
	Album
	Genre
	Title
	Filename
	Composer
	Comment
	AlbumArtist
	Grouping
	Year
	DiscNumber
	TrackNumber
	CanonicalArtist
	Bitrate
	Length
	PlayCount
	Rating
	PlayTime
	LastPlayed
	CommitID
	MTime
	LastElapsed
	LastOffset

	// KindCount is the number of tag kinds, and the width of an index
	// record's tag_seek vector.
	KindCount
)

// Storage describes how a kind's per-track value is represented.
type Storage int

const (
	// FileReferenced kinds store an offset into a dedicated tag file.
	FileReferenced Storage = iota
	// EmbeddedNumeric kinds store their value inline in the index record.
	EmbeddedNumeric
)

// Magic is the 32-bit constant every tagcache file (index and tag data)
// begins with.
const Magic uint32 = 0x54434810

// Sentinel marks a file-referenced slot that has no value, and an
// unresolved reference that could not be resolved at finalize.
const Sentinel uint32 = 0xFFFFFFFF

// Descriptor is one row of the tag taxonomy table.
type Descriptor struct {
	Kind             Kind
	Name             string
	Storage          Storage
	Filename         string // empty for embedded-numeric kinds
	DuplicatesAllowed bool
	IsFilenameDB     bool
}

var descriptors = [KindCount]Descriptor{
	Artist:          {Artist, "artist", FileReferenced, "database_0.tcd", false, false},
	Album:           {Album, "album", FileReferenced, "database_1.tcd", false, false},
	Genre:           {Genre, "genre", FileReferenced, "database_2.tcd", false, false},
	Title:           {Title, "title", FileReferenced, "database_3.tcd", true, false},
	Filename:        {Filename, "filename", FileReferenced, "database_4.tcd", false, true},
	Composer:        {Composer, "composer", FileReferenced, "database_5.tcd", false, false},
	Comment:         {Comment, "comment", FileReferenced, "database_6.tcd", false, false},
	AlbumArtist:     {AlbumArtist, "albumartist", FileReferenced, "database_7.tcd", false, false},
	Grouping:        {Grouping, "grouping", FileReferenced, "database_8.tcd", false, false},
	Year:            {Year, "year", EmbeddedNumeric, "", false, false},
	DiscNumber:      {DiscNumber, "discnumber", EmbeddedNumeric, "", false, false},
	TrackNumber:     {TrackNumber, "tracknumber", EmbeddedNumeric, "", false, false},
	CanonicalArtist: {CanonicalArtist, "canonicalartist", FileReferenced, "database_12.tcd", false, false},
	Bitrate:         {Bitrate, "bitrate", EmbeddedNumeric, "", false, false},
	Length:          {Length, "length", EmbeddedNumeric, "", false, false},
	PlayCount:       {PlayCount, "playcount", EmbeddedNumeric, "", false, false},
	Rating:          {Rating, "rating", EmbeddedNumeric, "", false, false},
	PlayTime:        {PlayTime, "playtime", EmbeddedNumeric, "", false, false},
	LastPlayed:      {LastPlayed, "lastplayed", EmbeddedNumeric, "", false, false},
	CommitID:        {CommitID, "commitid", EmbeddedNumeric, "", false, false},
	MTime:           {MTime, "mtime", EmbeddedNumeric, "", false, false},
	LastElapsed:     {LastElapsed, "lastelapsed", EmbeddedNumeric, "", false, false},
	LastOffset:      {LastOffset, "lastoffset", EmbeddedNumeric, "", false, false},
}

// FileReferencedKinds lists the 10 kinds backed by their own tag file, in
// ascending tag-index order.
var FileReferencedKinds = []Kind{Artist, Album, Genre, Title, Filename, Composer, Comment, AlbumArtist, Grouping, CanonicalArtist}

// Describe returns the taxonomy row for k.
func Describe(k Kind) (Descriptor, error) {
	if k < 0 || k >= KindCount {
		return Descriptor{}, &UnknownTag{NameOrIndex: fmt.Sprintf("%d", int(k))}
	}
	return descriptors[k], nil
}

// ByName looks up a kind by its canonical lowercase name.
func ByName(name string) (Kind, error) {
	for _, d := range descriptors {
		if d.Name == name {
			return d.Kind, nil
		}
	}
	return 0, &UnknownTag{NameOrIndex: name}
}

// ByFilename looks up the file-referenced kind whose on-disk tag file is
// named filename (e.g. "database_4.tcd").
func ByFilename(filename string) (Kind, error) {
	for _, d := range descriptors {
		if d.Storage == FileReferenced && d.Filename == filename {
			return d.Kind, nil
		}
	}
	return 0, &UnknownTag{NameOrIndex: filename}
}

// String renders the tag's canonical name.
func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return descriptors[k].Name
}

// IsFileReferenced reports whether k's per-track value is a tag-file
// offset rather than an inline numeric datum.
func (k Kind) IsFileReferenced() bool {
	d, err := Describe(k)
	return err == nil && d.Storage == FileReferenced
}
