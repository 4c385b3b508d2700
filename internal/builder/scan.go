// Package builder implements the library-build pipeline: directory scan,
// parallel metadata extraction, and fresh IndexFile/TagFile construction
// (spec §4.8).
package builder

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"

	"github.com/rockbox-tools/tagdb/internal/logging"
	"github.com/rockbox-tools/tagdb/internal/tagreader"
	"github.com/rockbox-tools/tagdb/internal/tracks"
)

// DefaultExtensions is the default set of audio file extensions the scan
// recognizes (spec §4.8).
var DefaultExtensions = []string{".mp3", ".flac", ".ogg", ".wav", ".ape", ".wv", ".m4a", ".mp4", ".mpc"}

// ScanOptions configures the directory walk and extraction pool.
type ScanOptions struct {
	// Extensions restricts which files are processed. Nil uses
	// DefaultExtensions.
	Extensions []string
	// Workers is the extraction pool width. 0 means logical-core count.
	Workers int
	Logger  logging.Logger
}

// ScanDirectory walks root recursively, collecting every file whose
// extension (case-insensitive) is in opts.Extensions.
func ScanDirectory(root string, opts ScanOptions) ([]string, error) {
	exts := opts.Extensions
	if exts == nil {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if allowed[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ExtractAll runs reader.Extract over paths using a worker pool of width
// opts.Workers (default = number of logical CPUs, via workerCount).
// A per-file failure is logged and the file dropped; it never aborts the
// overall scan (spec §7 propagation policy). The aggregate of dropped-file
// errors is returned via multierr for callers who want full detail, but a
// non-nil return does not mean the scan failed.
func ExtractAll(paths []string, reader tagreader.Reader, opts ScanOptions) ([]*tracks.Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}

	p := pool.New().WithMaxGoroutines(workerCount(opts.Workers))

	var mu sync.Mutex
	var results []*tracks.Metadata
	var errs error

	for _, path := range paths {
		path := path
		p.Go(func() {
			m, err := reader.Extract(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("skipping %s: %v", path, err)
				errs = multierr.Append(errs, err)
				return
			}
			results = append(results, m)
		})
	}
	p.Wait()

	return results, errs
}

// workerCount resolves the pool width: the caller's request, or the
// logical-core count when unspecified (spec §4.8, §5).
func workerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}
