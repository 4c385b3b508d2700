// Package carryover copies per-track counters from an older database into
// a freshly built one, keyed by track path (spec §4.10).
package carryover

import "github.com/rockbox-tools/tagdb/internal/tagcache"

// counterKinds are the five embedded-numeric slots carried over verbatim.
var counterKinds = []tagcache.Kind{
	tagcache.PlayCount,
	tagcache.Rating,
	tagcache.LastPlayed,
	tagcache.LastElapsed,
	tagcache.LastOffset,
}

// Apply copies counterKinds from source into target for every target
// record whose filename-slot value matches a source record's. It returns
// the number of target records that had no counterpart in source.
func Apply(source, target *tagcache.IndexFile) (unmatched int) {
	byPath := make(map[string]*tagcache.IndexEntry, len(source.Entries))
	for _, e := range source.Entries {
		if path, ok := e.GetString(tagcache.Filename); ok {
			byPath[path] = e
		}
	}

	for _, t := range target.Entries {
		path, ok := t.GetString(tagcache.Filename)
		if !ok {
			unmatched++
			continue
		}
		s, found := byPath[path]
		if !found {
			unmatched++
			continue
		}
		for _, k := range counterKinds {
			if v, ok := s.GetNumeric(k); ok {
				t.SetSlot(k, tagcache.IntSlot(v))
			}
		}
	}

	return unmatched
}
