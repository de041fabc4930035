package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoatlas/repotext/pkg/walk"
)

func TestAssemble_SectionOrder(t *testing.T) {
	meta := Meta{
		SourceName:    "proj.zip",
		Excludes:      []string{"*.log", "build"},
		MaxFileSizeKB: 64,
	}
	counters := walk.Counters{Dirs: 3, Files: 5, ExcludedDirs: 1, ExcludedFiles: 2}
	structure := "proj/\n  |-- a.txt\n"
	contents := "--- BEGIN FILE: a.txt ---\nhello\n--- END FILE: a.txt ---\n\n"

	out := Assemble(meta, structure, counters, contents)

	assert.True(t, strings.HasPrefix(out, "Repository structure and content from file: proj.zip\n"))
	assert.Contains(t, out, "Applied exclusion patterns: *.log, build\n")
	assert.Contains(t, out, "Applied max file size limit: 64 KB\n")
	assert.Contains(t, out, "DIRECTORY STRUCTURE:\n")
	assert.Contains(t, out, "(Included directories: 3, Included files: 5, Excluded dirs: 1, Excluded files: 2)\n")
	assert.Contains(t, out, "FILE CONTENTS:\n")
	assert.Contains(t, out, contents)

	// Fixed ordering: header, structure, summary, contents.
	iStructure := strings.Index(out, "DIRECTORY STRUCTURE:")
	iSummary := strings.Index(out, "(Included directories:")
	iContents := strings.Index(out, "FILE CONTENTS:")
	assert.Less(t, iStructure, iSummary)
	assert.Less(t, iSummary, iContents)
}

func TestAssemble_OmitsOptionalHeaderLines(t *testing.T) {
	out := Assemble(Meta{SourceName: "p.zip"}, "p/\n", walk.Counters{Dirs: 1}, "")

	assert.NotContains(t, out, "Applied exclusion patterns")
	assert.NotContains(t, out, "Applied max file size limit")
	assert.Contains(t, out, "(Included directories: 1, Included files: 0)\n")
}

func TestWrite_CreatesIntermediateDirs(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "deeper", "out.txt")

	require.NoError(t, Write(dest, "report body\n"))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", string(content))
}

func TestWrite_FailsOnUnwritableDestination(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	// Using an existing file as a directory component must fail.
	err := Write(filepath.Join(blocked, "out.txt"), "body")
	require.Error(t, err)
}
