package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rockbox-tools/tagdb/internal/genre"
	"github.com/rockbox-tools/tagdb/internal/tagcache"
)

var (
	canonicDryRun     bool
	canonicGenreCount int
)

var canonicCmd = &cobra.Command{
	Use:   "canonic <in_db_dir> <out_db_dir> <genre_file>",
	Short: "Rewrite a database's genre slots to a single canonical genre",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCanonic(args[0], args[1], args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(canonicCmd)
	canonicCmd.Flags().BoolVar(&canonicDryRun, "dry-run", false, "report what would change without writing the output database")
	canonicCmd.Flags().IntVar(&canonicGenreCount, "genre-count", 0, "roll-up threshold for the genre hierarchy (0 = every genre maps to itself)")
}

func runCanonic(inDir, outDir, genreFile string) error {
	idx, err := tagcache.LoadIndexFile(filepath.Join(inDir, tagcache.IndexFilename), nil)
	if err != nil {
		return fmt.Errorf("load %s: %w", inDir, err)
	}

	forest, err := genre.LoadHierarchy(genreFile)
	if err != nil {
		return err
	}
	m := genre.BuildCanonicalMap(forest, canonicGenreCount)

	res := genre.Canonicalize(idx, m)
	fmt.Printf("genre canonicalization: %d rewritten, %d unchanged, %d skipped\n", res.Rewritten, res.Unchanged, res.Skipped)

	if canonicDryRun {
		return nil
	}

	return tagcache.WriteDatabase(idx, outDir, tagcache.WriteOptions{AutoFinalize: true})
}
