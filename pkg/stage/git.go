package stage

import (
	"fmt"
	"os"
	"path"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitStager clones a git repository into a temporary directory, giving
// git URLs the same staging contract as zip archives.
type GitStager struct {
	url string
}

// NewGitStager creates a stager for the repository at url.
func NewGitStager(url string) *GitStager {
	return &GitStager{url: url}
}

// Name returns the repository name derived from the clone URL.
func (s *GitStager) Name() string {
	name := strings.TrimSuffix(path.Base(strings.TrimSuffix(s.url, "/")), ".git")
	// SSH shorthand like git@host:org/repo has no slash for path.Base to split on.
	if i := strings.LastIndexAny(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." {
		return "repository"
	}
	return name
}

// Stage clones the default branch (single branch, full depth) into a
// fresh temp directory. The clone directory itself is the repository
// root, so resolution never has to guess for git sources.
func (s *GitStager) Stage() (string, func(), error) {
	noop := func() {}

	dir, err := os.MkdirTemp("", "repotext-git-*")
	if err != nil {
		return "", noop, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	_, err = git.PlainClone(dir, false, &git.CloneOptions{
		URL:           s.url,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		cleanup()
		return "", noop, fmt.Errorf("cloning %s: %w", s.url, err)
	}

	return dir, cleanup, nil
}
