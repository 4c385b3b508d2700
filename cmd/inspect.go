package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rockbox-tools/tagdb/internal/tagcache"
)

var (
	inspectStats   bool
	inspectAlbums  bool
	inspectArtists bool
	inspectTracks  bool
	inspectGenres  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <db_dir>",
	Short: "Print read-only summary views of a database",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectStats, "stats", false, "print entry counts and a dangling-reference consistency check")
	inspectCmd.Flags().BoolVar(&inspectAlbums, "albums", false, "list distinct albums")
	inspectCmd.Flags().BoolVar(&inspectArtists, "artists", false, "list distinct artists")
	inspectCmd.Flags().BoolVar(&inspectTracks, "tracks", false, "list every track's title/artist/album")
	inspectCmd.Flags().BoolVar(&inspectGenres, "genres", false, "list distinct genres")
}

func runInspect(dbDir string) error {
	idx, err := tagcache.LoadIndexFile(filepath.Join(dbDir, tagcache.IndexFilename), nil)
	if err != nil {
		return fmt.Errorf("load %s: %w", dbDir, err)
	}

	any := inspectStats || inspectAlbums || inspectArtists || inspectTracks || inspectGenres
	if !any {
		inspectStats = true
	}

	if inspectStats {
		printStats(idx)
	}
	if inspectArtists {
		printDistinct(idx, tagcache.Artist, "Artist")
	}
	if inspectAlbums {
		printDistinct(idx, tagcache.Album, "Album")
	}
	if inspectGenres {
		printDistinct(idx, tagcache.Genre, "Genre")
	}
	if inspectTracks {
		printTracks(idx)
	}

	return nil
}

func printStats(idx *tagcache.IndexFile) {
	// A slot holding a non-sentinel, non-zero offset that doesn't resolve
	// to a string value is a dangling reference.
	dangling := 0
	for _, e := range idx.Entries {
		for _, k := range tagcache.FileReferencedKinds {
			slot := e.Slot(k)
			if slot.IsReference() {
				continue
			}
			if slot.Int() == tagcache.Sentinel || slot.Int() == 0 {
				continue
			}
			if _, ok := e.GetString(k); !ok {
				dangling++
			}
		}
	}

	pterm.DefaultSection.Println("Database summary")
	tableData := pterm.TableData{
		{"field", "value"},
		{"entry_count", fmt.Sprintf("%d", idx.EntryCount)},
		{"data_size", fmt.Sprintf("%d", idx.DataSize)},
		{"dangling references", fmt.Sprintf("%d", dangling)},
	}
	for _, k := range tagcache.FileReferencedKinds {
		tf := idx.Siblings()[k]
		d, _ := tagcache.Describe(k)
		tableData = append(tableData, []string{d.Name + " entries", fmt.Sprintf("%d", tf.Len())})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func printDistinct(idx *tagcache.IndexFile, k tagcache.Kind, label string) {
	seen := map[string]bool{}
	var values []string
	for _, e := range idx.Entries {
		v, ok := e.GetString(k)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	pterm.DefaultSection.Printf("%ss (%d)", label, len(values))
	for _, v := range values {
		pterm.Println(v)
	}
}

func printTracks(idx *tagcache.IndexFile) {
	pterm.DefaultSection.Println("Tracks")
	tableData := pterm.TableData{{"title", "artist", "album"}}
	for _, e := range idx.Entries {
		title, _ := e.GetString(tagcache.Title)
		artist, _ := e.GetString(tagcache.Artist)
		album, _ := e.GetString(tagcache.Album)
		tableData = append(tableData, []string{title, artist, album})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
