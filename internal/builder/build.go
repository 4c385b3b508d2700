package builder

import (
	"github.com/rockbox-tools/tagdb/internal/tagcache"
	"github.com/rockbox-tools/tagdb/internal/tracks"
)

// Build constructs a fresh IndexFile from metas, in input order (spec
// §4.8). Callers that need deterministic tag-file content/ordering must
// sort metas (e.g. by path) before calling Build, since ScanDirectory's
// output order is arbitrary.
func Build(metas []*tracks.Metadata) *tagcache.IndexFile {
	idx := tagcache.NewIndexFile()

	for i, m := range metas {
		entry := tagcache.NewIndexEntry()

		setNumeric(entry, tagcache.Year, m.Year, m.HasYear)
		setNumeric(entry, tagcache.DiscNumber, m.DiscNumber, m.HasDiscNumber)
		setNumeric(entry, tagcache.TrackNumber, m.TrackNumber, m.HasTrackNumber)
		setNumeric(entry, tagcache.Bitrate, m.BitrateKbps, m.HasBitrate)
		setNumeric(entry, tagcache.Length, m.LengthMs, m.HasLength)
		entry.SetSlot(tagcache.MTime, tagcache.IntSlot(m.ModTime))

		addString(idx, entry, tagcache.Artist, m.Artist, i)
		addString(idx, entry, tagcache.Album, m.Album, i)
		addString(idx, entry, tagcache.Genre, m.Genre, i)
		addString(idx, entry, tagcache.Title, m.Title, i)
		addString(idx, entry, tagcache.Filename, m.Path, i)
		addString(idx, entry, tagcache.Composer, m.EffectiveComposer(), i)
		addString(idx, entry, tagcache.Comment, m.EffectiveComment(), i)
		addString(idx, entry, tagcache.AlbumArtist, m.AlbumArtist, i)
		addString(idx, entry, tagcache.Grouping, m.EffectiveGrouping(), i)
		addString(idx, entry, tagcache.CanonicalArtist, m.CanonicalArtist(), i)

		idx.AddEntry(entry)
	}

	return idx
}

func setNumeric(entry *tagcache.IndexEntry, k tagcache.Kind, v uint32, has bool) {
	if !has {
		entry.SetSlot(k, tagcache.IntSlot(0))
		return
	}
	entry.SetSlot(k, tagcache.IntSlot(v))
}

// addString pulls the string for kind, adds it to the sibling tag file
// (get-or-insert) and stores a reference in the slot. A blank value leaves
// the slot as integer 0, which finalize later turns into the sentinel
// (spec §4.8 step 2c). idx_id is the track's ordinal i for the title and
// filename kinds only (Open Question #3); every other kind gets the
// sentinel.
func addString(idx *tagcache.IndexFile, entry *tagcache.IndexEntry, kind tagcache.Kind, value string, i int) {
	if value == "" {
		entry.SetSlot(kind, tagcache.IntSlot(0))
		return
	}

	idxID := tagcache.Sentinel
	if kind == tagcache.Title || kind == tagcache.Filename {
		idxID = uint32(i)
	}

	newEntry := tagcache.NewEntry(kind, value)
	newEntry.IdxID = idxID

	tf := idx.Siblings()[kind]
	stored := tf.Add(newEntry)
	entry.SetSlot(kind, tagcache.RefSlot(stored))
}
