package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rockbox-tools/tagdb/internal/builder"
	"github.com/rockbox-tools/tagdb/internal/carryover"
	"github.com/rockbox-tools/tagdb/internal/config"
	"github.com/rockbox-tools/tagdb/internal/genre"
	"github.com/rockbox-tools/tagdb/internal/logging"
	"github.com/rockbox-tools/tagdb/internal/progress"
	"github.com/rockbox-tools/tagdb/internal/tagcache"
	"github.com/rockbox-tools/tagdb/internal/tagreader"
	"github.com/rockbox-tools/tagdb/internal/tracks"
)

var (
	buildGenreFile string
	buildOldDB     string
	buildStats     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <music_dir> <device_relative_prefix> <output_db_dir>",
	Short: "Scan a music directory and build a fresh tagcache database",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBuild(args[0], args[1], args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildGenreFile, "genre-file", "", "genre hierarchy YAML file to canonicalize genres against")
	buildCmd.Flags().StringVar(&buildOldDB, "old-db", "", "prior database directory to carry playcount/rating/etc. over from")
	buildCmd.Flags().BoolVar(&buildStats, "stats", false, "print entry counts and duration on completion")
}

func runBuild(musicDir, devicePrefix, outDir string) error {
	start := time.Now()
	logger, sync, err := newZapLogger()
	if err != nil {
		return err
	}
	defer sync()

	paths, err := builder.ScanDirectory(musicDir, builder.ScanOptions{Workers: config.NumProcesses(), Logger: logger})
	if err != nil {
		return fmt.Errorf("scan %s: %w", musicDir, err)
	}

	var bar *progress.CLIAdapter
	cb := progress.Nop
	if !config.NoProgress() {
		bar = progress.NewCLIAdapter(len(paths), "extracting tags")
		cb = bar.Callback()
	}

	metas, extractErr := builder.ExtractAll(paths, tagreader.NewDhowdenReader(), builder.ScanOptions{
		Workers: config.NumProcesses(),
		Logger:  logger,
	})
	if extractErr != nil {
		logger.Debug("some files were skipped during extraction: %v", extractErr)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	cb(progress.KindMessage, fmt.Sprintf("extracted metadata for %d/%d files", len(metas), len(paths)))

	sort.Slice(metas, func(i, j int) bool { return metas[i].Path < metas[j].Path })
	rewriteDevicePaths(metas, musicDir, devicePrefix)

	idx := builder.Build(metas)

	if buildGenreFile != "" {
		forest, err := genre.LoadHierarchy(buildGenreFile)
		if err != nil {
			return err
		}
		m := genre.BuildCanonicalMap(forest, 0)
		res := genre.Canonicalize(idx, m)
		logger.Info("genre canonicalization: %d rewritten, %d unchanged, %d skipped", res.Rewritten, res.Unchanged, res.Skipped)
	}

	if buildOldDB != "" {
		old, err := tagcache.LoadIndexFile(filepath.Join(buildOldDB, tagcache.IndexFilename), nil)
		if err != nil {
			return fmt.Errorf("load old database %s: %w", buildOldDB, err)
		}
		unmatched := carryover.Apply(old, idx)
		logger.Info("metadata carry-over: %d unmatched tracks", unmatched)
	}

	if err := tagcache.WriteDatabase(idx, outDir, tagcache.WriteOptions{AutoFinalize: true}); err != nil {
		return fmt.Errorf("write database: %w", err)
	}

	if buildStats {
		fmt.Printf("wrote %d entries to %s in %s\n", len(idx.Entries), outDir, time.Since(start))
	}

	return nil
}

// rewriteDevicePaths replaces each metadata record's Path (an absolute
// filesystem path under musicDir) with devicePrefix + its path relative to
// musicDir, using forward slashes as the firmware expects.
func rewriteDevicePaths(metas []*tracks.Metadata, musicDir, devicePrefix string) {
	for _, m := range metas {
		rel, err := filepath.Rel(musicDir, m.Path)
		if err != nil {
			continue
		}
		rel = strings.ReplaceAll(rel, string(filepath.Separator), "/")
		m.Path = strings.TrimSuffix(devicePrefix, "/") + "/" + rel
	}
}

func newZapLogger() (*logging.ZapLogger, func() error, error) {
	l, err := logging.NewZapLogger(false)
	if err != nil {
		return nil, nil, err
	}
	return l, l.Sync, nil
}
