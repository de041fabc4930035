// Package report assembles the final text artifact and persists it.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/repoatlas/repotext/pkg/walk"
)

const rule = 80

// Meta describes the run parameters echoed in the report header.
type Meta struct {
	// SourceName is the archive file name or repository name.
	SourceName string
	// Excludes are the applied exclusion patterns, in the order given.
	Excludes []string
	// MaxFileSizeKB is the applied content size limit; 0 means unlimited.
	MaxFileSizeKB int64
}

// Assemble builds the complete artifact in memory: header, directory
// structure, summary, and the file-contents section.
func Assemble(meta Meta, structure string, counters walk.Counters, contents string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Repository structure and content from file: %s\n", meta.SourceName))
	if len(meta.Excludes) > 0 {
		b.WriteString(fmt.Sprintf("Applied exclusion patterns: %s\n", strings.Join(meta.Excludes, ", ")))
	}
	if meta.MaxFileSizeKB > 0 {
		b.WriteString(fmt.Sprintf("Applied max file size limit: %d KB\n", meta.MaxFileSizeKB))
	}
	b.WriteString(strings.Repeat("=", rule) + "\n")

	b.WriteString("DIRECTORY STRUCTURE:\n")
	b.WriteString(strings.Repeat("-", rule) + "\n")
	b.WriteString(structure)

	b.WriteString(fmt.Sprintf("\n(Included directories: %d, Included files: %d", counters.Dirs, counters.Files))
	if counters.ExcludedDirs > 0 || counters.ExcludedFiles > 0 {
		b.WriteString(fmt.Sprintf(", Excluded dirs: %d, Excluded files: %d", counters.ExcludedDirs, counters.ExcludedFiles))
	}
	b.WriteString(")\n")

	b.WriteString("\n" + strings.Repeat("=", rule) + "\n")
	b.WriteString("FILE CONTENTS:\n")
	b.WriteString(strings.Repeat("-", rule) + "\n\n")
	b.WriteString(contents)

	return b.String()
}

// Write persists the assembled text in a single write, creating missing
// parent directories first.
func Write(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
