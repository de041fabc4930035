// Package stage materializes a repository source (zip archive or git URL)
// into an ephemeral working directory.
package stage

import (
	"errors"
	"strings"
)

// ErrInvalidArchive indicates the input is not a well-formed container of
// the supported format.
var ErrInvalidArchive = errors.New("invalid archive")

// Stager produces a filesystem location with the fully staged source.
type Stager interface {
	// Stage extracts or clones the source and returns the staging
	// directory together with a cleanup function. The cleanup function is
	// safe to call on every exit path and removes the whole directory;
	// it is non-nil even when Stage fails.
	Stage() (dir string, cleanup func(), err error)

	// Name returns the display-oriented source name (archive file name or
	// repository name), used in the report header and for deriving the
	// default output path.
	Name() string
}

// ForSource picks a stager for the given input: git URLs get a GitStager,
// everything else is treated as a zip archive path.
func ForSource(source string) Stager {
	if IsGitURL(source) {
		return NewGitStager(source)
	}
	return NewZipStager(source)
}

// IsGitURL reports whether the input looks like a git repository URL
// rather than a local archive path.
func IsGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") || strings.HasPrefix(input, "git@")
}
