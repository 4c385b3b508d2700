package genre

import (
	"strings"

	"github.com/rockbox-tools/tagdb/internal/tagcache"
)

// Result reports how many genre slots canonicalization touched.
type Result struct {
	Rewritten int
	Unchanged int
	Skipped   int // empty genre, or a deleted record
}

// Canonicalize rewrites every non-deleted record's genre slot in idx to a
// single title-cased canonical genre, per spec §4.9's per-track algorithm,
// then strips any leftover legacy multi-value strings from the genre tag
// file.
func Canonicalize(idx *tagcache.IndexFile, m CanonicalMap) Result {
	var res Result

	genreTF := idx.Siblings()[tagcache.Genre]

	for _, entry := range idx.Entries {
		if entry.HasFlag(tagcache.FlagDeleted) {
			res.Skipped++
			continue
		}

		current, ok := entry.GetString(tagcache.Genre)
		if !ok || current == "" {
			res.Skipped++
			continue
		}

		parts := splitTrim(current)
		if len(parts) == 0 {
			res.Skipped++
			continue
		}

		canonOrder := make([]string, 0, len(parts))
		counts := make(map[string]int)
		for _, p := range parts {
			c := m.Canonicalize(p)
			if counts[c] == 0 {
				canonOrder = append(canonOrder, c)
			}
			counts[c]++
		}

		chosen := canonOrder[0]
		best := counts[chosen]
		for _, c := range canonOrder[1:] {
			if counts[c] > best {
				chosen = c
				best = counts[c]
			}
		}

		titled := titleCase(chosen)

		if strings.EqualFold(titled, current) {
			res.Unchanged++
			continue
		}

		newEntry := genreTF.Add(tagcache.NewEntry(tagcache.Genre, titled))
		entry.SetSlot(tagcache.Genre, tagcache.RefSlot(newEntry))
		res.Rewritten++
	}

	genreTF.RemoveMultiValueLegacyStrings()

	return res
}

func splitTrim(s string) []string {
	raw := strings.Split(s, ";")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// titleCase upper-cases the first letter of each space-separated word,
// lower-casing the rest (spec §4.9 step 6).
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
