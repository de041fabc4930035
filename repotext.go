// Package repotext turns a repository archive or git URL into a single
// text report combining a directory-structure listing and the filtered,
// size-capped contents of every non-binary file.
//
// # Basic Usage
//
// Generate a report from a zip archive:
//
//	rep, err := repotext.Generate("project.zip")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.Text)
//
// # With Options
//
// Exclude paths and cap rendered file sizes:
//
//	rep, err := repotext.Generate("project.zip",
//	    repotext.WithExcludes("*.log", "node_modules"),
//	    repotext.WithMaxFileSizeKB(256),
//	)
//
// Write the artifact directly:
//
//	err := repotext.GenerateToFile("project.zip", "project_report.txt")
package repotext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/repoatlas/repotext/pkg/exclude"
	"github.com/repoatlas/repotext/pkg/repo"
	"github.com/repoatlas/repotext/pkg/report"
	"github.com/repoatlas/repotext/pkg/stage"
	"github.com/repoatlas/repotext/pkg/walk"
)

// Counters re-exports the walker's run tallies for facade users.
type Counters = walk.Counters

// Report is the outcome of one generation run.
type Report struct {
	// Text is the complete assembled artifact.
	Text string
	// SourceName is the archive or repository name used in the header.
	SourceName string
	// Counters are the final run tallies.
	Counters Counters
}

// genConfig holds generation configuration.
type genConfig struct {
	excludes      []string
	maxFileSizeKB int64
	useGitignore  bool
	warnf         func(format string, args ...any)
	progress      func(done, total int)
}

// Option configures a generation run.
type Option func(*genConfig)

// WithExcludes adds glob exclusion patterns, matched against both the
// root-relative path and the bare entry name.
func WithExcludes(patterns ...string) Option {
	return func(c *genConfig) {
		c.excludes = append(c.excludes, patterns...)
	}
}

// WithMaxFileSizeKB caps rendered file content in kilobytes.
// Zero (the default) means unlimited.
func WithMaxFileSizeKB(kb int64) Option {
	return func(c *genConfig) {
		c.maxFileSizeKB = kb
	}
}

// WithGitignore additionally applies the staged repository's top-level
// .gitignore rules during traversal.
func WithGitignore() Option {
	return func(c *genConfig) {
		c.useGitignore = true
	}
}

// WithWarnFunc receives non-fatal diagnostics (ambiguous roots,
// unlistable subdirectories). The default discards them.
func WithWarnFunc(f func(format string, args ...any)) Option {
	return func(c *genConfig) {
		c.warnf = f
	}
}

// WithProgress is invoked after each rendered file with (done, total).
func WithProgress(f func(done, total int)) Option {
	return func(c *genConfig) {
		c.progress = f
	}
}

// Generate stages the source, resolves its root, walks it, and returns
// the assembled report. The staging directory is removed on every exit
// path. Per-file failures degrade to inline notices; only staging, root
// resolution, or an unlistable root fail the run.
func Generate(source string, opts ...Option) (*Report, error) {
	cfg := &genConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	matcher, err := exclude.NewMatcher(cfg.excludes)
	if err != nil {
		return nil, err
	}

	stager := stage.ForSource(source)
	dir, cleanup, err := stager.Stage()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	root, err := resolveRoot(stager, dir)
	if err != nil {
		return nil, err
	}
	if root.Warning != "" && cfg.warnf != nil {
		cfg.warnf("%s", root.Warning)
	}

	var ignore *gitignore.GitIgnore
	if cfg.useGitignore {
		ignorePath := filepath.Join(root.Path, ".gitignore")
		if _, err := os.Stat(ignorePath); err == nil {
			ignore, _ = gitignore.CompileIgnoreFile(ignorePath)
		}
	}

	w := &walk.Walker{
		Root:        root.Path,
		DisplayName: root.DisplayName,
		Matcher:     matcher,
		MaxFileSize: cfg.maxFileSizeKB * 1024,
		Ignore:      ignore,
		Warnf:       cfg.warnf,
		Progress:    cfg.progress,
	}
	res, err := w.Run()
	if err != nil {
		return nil, err
	}

	meta := report.Meta{
		SourceName:    stager.Name(),
		Excludes:      cfg.excludes,
		MaxFileSizeKB: cfg.maxFileSizeKB,
	}

	return &Report{
		Text:       report.Assemble(meta, res.Structure, res.Counters, res.Contents),
		SourceName: stager.Name(),
		Counters:   res.Counters,
	}, nil
}

// GenerateToFile runs Generate and persists the artifact at outPath,
// creating missing parent directories.
func GenerateToFile(source, outPath string, opts ...Option) error {
	rep, err := Generate(source, opts...)
	if err != nil {
		return err
	}
	return report.Write(outPath, rep.Text)
}

// DefaultOutputPath derives the conventional output file name for a
// source: "<base>_structure_and_content.txt".
func DefaultOutputPath(source string) string {
	name := stage.ForSource(source).Name()
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("%s_structure_and_content.txt", base)
}

// resolveRoot picks the traversal root. Git clones are their own root;
// zip extractions go through the layout heuristic.
func resolveRoot(stager stage.Stager, dir string) (repo.Root, error) {
	if _, ok := stager.(*stage.GitStager); ok {
		return repo.Root{Path: dir, DisplayName: stager.Name()}, nil
	}
	return repo.Resolve(dir, stager.Name())
}
