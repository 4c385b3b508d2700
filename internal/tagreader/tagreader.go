// Package tagreader is the pluggable boundary collaborator spec.md §1 calls
// out as "audio-tag extraction from individual files": a Reader interface
// plus a default implementation over github.com/dhowden/tag.
package tagreader

import (
	"os"

	"github.com/dhowden/tag"

	"github.com/rockbox-tools/tagdb/internal/tagcache/byteio"
	"github.com/rockbox-tools/tagdb/internal/tracks"
)

// Reader extracts a Metadata record from one audio file. Implementations
// must be safe to call concurrently from multiple builder workers, each on
// a distinct path.
type Reader interface {
	Extract(path string) (*tracks.Metadata, error)
}

// DhowdenReader is the default Reader, backed by github.com/dhowden/tag's
// container-sniffing metadata parser (mp3/flac/ogg/m4a/...).
type DhowdenReader struct{}

// NewDhowdenReader constructs the default tag-reader adapter.
func NewDhowdenReader() *DhowdenReader { return &DhowdenReader{} }

// Extract opens path, reads its container tags, and stats the file for
// size and modification time. A file whose tags cannot be parsed still
// yields a Metadata record carrying only path/size/modtime: the builder
// must be able to index untagged audio rather than drop it.
func (r *DhowdenReader) Extract(path string) (*tracks.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	m := &tracks.Metadata{
		Path:    path,
		Size:    info.Size(),
		ModTime: byteio.Pack(info.ModTime()),
	}

	f, err := os.Open(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return m, nil
	}

	m.Title = meta.Title()
	m.Artist = meta.Artist()
	m.Album = meta.Album()
	m.AlbumArtist = meta.AlbumArtist()
	m.Composer = meta.Composer()
	m.Comment = meta.Comment()
	m.Genre = meta.Genre()

	if year := meta.Year(); year > 0 {
		m.Year = uint32(year)
		m.HasYear = true
	}

	track, _ := meta.Track()
	if track > 0 {
		m.TrackNumber = uint32(track)
		m.HasTrackNumber = true
	}

	disc, _ := meta.Disc()
	if disc > 0 {
		m.DiscNumber = uint32(disc)
		m.HasDiscNumber = true
	}

	return m, nil
}
