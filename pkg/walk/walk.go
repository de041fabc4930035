// Package walk performs the single deterministic traversal of a resolved
// repository root, producing the structure listing, the ordered set of
// files to render, rendered content blocks, and the run counters.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/repoatlas/repotext/pkg/exclude"
)

// FileRecord is a file selected for content rendering.
type FileRecord struct {
	// HeaderPath is the root-relative display path used in the
	// BEGIN/END markers (bare name for files directly under root).
	HeaderPath string
	// AbsPath is the file's location inside the staging directory.
	AbsPath string
}

// Counters accumulates per-run tallies, read once to build the summary.
type Counters struct {
	Dirs          int // included directories, root counts as one
	Files         int // included files
	ExcludedDirs  int
	ExcludedFiles int
	Processed     int // files whose content block was attempted
	SkippedBinary int
	SkippedSize   int
	ReadErrors    int
}

// Result is the outcome of one traversal-and-render run.
type Result struct {
	// Structure is the indented directory listing, one line per entry.
	Structure string
	// Files lists rendered files in emission order.
	Files []FileRecord
	// Contents holds the concatenated BEGIN/END content blocks.
	Contents string
	// Counters are the final run tallies.
	Counters Counters
}

// Walker runs one traversal. It is not safe for concurrent use; create a
// fresh Walker per run.
type Walker struct {
	// Root is the resolved repository root directory.
	Root string
	// DisplayName heads the structure listing.
	DisplayName string
	// Matcher excludes entries by glob pattern; nil excludes nothing.
	Matcher *exclude.Matcher
	// MaxFileSize caps rendered file content in bytes; 0 means unlimited.
	// Files strictly larger than the cap are skipped with a notice.
	MaxFileSize int64
	// Ignore optionally applies the repository's .gitignore rules on top
	// of the exclusion patterns.
	Ignore *gitignore.GitIgnore
	// Warnf receives non-fatal traversal diagnostics; nil discards them.
	Warnf func(format string, args ...any)
	// Progress is invoked after each rendered file with (done, total);
	// nil disables progress reporting.
	Progress func(done, total int)
}

// Run walks the root top-down, renders every included file, and returns
// the aggregated result. Only an unlistable root fails the run; every
// per-file failure degrades to an inline notice and a counter.
func (w *Walker) Run() (*Result, error) {
	var structure strings.Builder
	var files []FileRecord
	var c Counters

	structure.WriteString(w.DisplayName + "/\n")
	c.Dirs++

	if err := w.walkDir(w.Root, "", 0, &structure, &files, &c); err != nil {
		return nil, err
	}

	contents := w.render(files, &c)

	return &Result{
		Structure: structure.String(),
		Files:     files,
		Contents:  contents,
		Counters:  c,
	}, nil
}

// walkDir lists one directory, filters and sorts its children, emits the
// file lines, then recurses into the kept subdirectories. depth is the
// directory's own depth (root = 0).
func (w *Walker) walkDir(abs, rel string, depth int, structure *strings.Builder, files *[]FileRecord, c *Counters) error {
	entries, err := os.ReadDir(abs)
	if err != nil {
		if depth == 0 {
			return fmt.Errorf("listing repository root: %w", err)
		}
		w.warnf("skipping unlistable directory %s: %v", rel, err)
		return nil
	}

	// Filter into an immutable snapshot before emitting or recursing.
	var keptDirs, keptFiles []string
	for _, e := range entries {
		childRel := joinRel(rel, e.Name())
		if e.IsDir() {
			if w.excluded(childRel) {
				w.prune(filepath.Join(abs, e.Name()), c)
				continue
			}
			keptDirs = append(keptDirs, e.Name())
		} else {
			if w.excluded(childRel) {
				c.ExcludedFiles++
				continue
			}
			keptFiles = append(keptFiles, e.Name())
		}
	}
	sort.Strings(keptDirs)
	sort.Strings(keptFiles)

	indent := strings.Repeat("  ", depth+1) + "|-- "

	for _, name := range keptFiles {
		structure.WriteString(indent + name + "\n")
		c.Files++
		*files = append(*files, FileRecord{
			HeaderPath: joinRel(rel, name),
			AbsPath:    filepath.Join(abs, name),
		})
	}

	for _, name := range keptDirs {
		structure.WriteString(indent + name + "/\n")
		c.Dirs++
		if err := w.walkDir(filepath.Join(abs, name), joinRel(rel, name), depth+1, structure, files, c); err != nil {
			return err
		}
	}

	return nil
}

// excluded applies the glob matcher and, when configured, the gitignore
// rules to a root-relative path.
func (w *Walker) excluded(rel string) bool {
	if w.Matcher.Match(rel) {
		return true
	}
	return w.Ignore != nil && w.Ignore.MatchesPath(rel)
}

// prune accounts for an excluded directory: the directory itself plus its
// immediate children, counted once at the prune point. Nothing below the
// prune point is visited again.
func (w *Walker) prune(abs string, c *Counters) {
	c.ExcludedDirs++
	entries, err := os.ReadDir(abs)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			c.ExcludedDirs++
		} else {
			c.ExcludedFiles++
		}
	}
}

func (w *Walker) warnf(format string, args ...any) {
	if w.Warnf != nil {
		w.Warnf(format, args...)
	}
}

// joinRel joins forward-slash relative paths, treating "" as the root.
func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
