package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/repoatlas/repotext"
	"github.com/repoatlas/repotext/pkg/config"
	"github.com/repoatlas/repotext/pkg/report"
)

var (
	describeOutput      string
	describeExcludes    []string
	describeMaxFileSize int64
	describeGitignore   bool
	describeConfigPath  string
	describeColor       string
)

// styles holds color formatters for the terminal summary.
type styles struct {
	success *color.Color
	heading *color.Color
	number  *color.Color
}

// newStyles creates color formatters for summary output.
// enabled=false respects --color=never and the NO_COLOR env var.
func newStyles(enabled bool) *styles {
	s := &styles{
		success: color.New(color.Bold, color.FgHiGreen),
		heading: color.New(color.Bold),
		number:  color.New(color.FgHiBlue),
	}

	if !enabled {
		s.success.DisableColor()
		s.heading.DisableColor()
		s.number.DisableColor()
	}

	return s
}

var describeCmd = &cobra.Command{
	Use:   "describe <archive.zip | git-url>",
	Short: "Generate a structure-and-contents report for a repository",
	Long: `Stage a repository zip archive (or clone a git URL ending in .git), walk
its tree, and write one text file containing the directory structure and
the contents of every included non-binary file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "", "Output file path (default: <base>_structure_and_content.txt)")
	describeCmd.Flags().StringArrayVarP(&describeExcludes, "exclude", "e", nil, "Glob pattern to exclude (repeatable, matches relative paths and basenames)")
	describeCmd.Flags().Int64Var(&describeMaxFileSize, "max-file-size", 0, "Maximum file size in KB to include content (0 = no limit)")
	describeCmd.Flags().BoolVar(&describeGitignore, "gitignore", false, "Also honor the repository's top-level .gitignore")
	describeCmd.Flags().StringVar(&describeConfigPath, "config", "", "Config file path (default: ./"+config.DefaultFile+" if present)")
	describeCmd.Flags().StringVar(&describeColor, "color", "auto", "Color output: auto, always, never")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := loadDescribeConfig()
	if err != nil {
		return err
	}

	// Config supplies defaults; flags override.
	excludes := append(append([]string{}, cfg.Exclude...), describeExcludes...)
	maxKB := cfg.MaxFileSizeKB
	if cmd.Flags().Changed("max-file-size") {
		maxKB = describeMaxFileSize
	}
	if maxKB < 0 {
		return fmt.Errorf("max-file-size must not be negative")
	}

	outPath := describeOutput
	if outPath == "" {
		outPath = repotext.DefaultOutputPath(source)
		if cfg.OutputDir != "" {
			outPath = filepath.Join(cfg.OutputDir, outPath)
		}
	}

	setupColor()
	s := newStyles(!color.NoColor)

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Input: %s\n", source)
		fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", outPath)
		if len(excludes) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exclusions: %s\n", strings.Join(excludes, ", "))
		}
		if maxKB > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Max file size: %d KB\n", maxKB)
		}
	}

	opts := []repotext.Option{
		repotext.WithExcludes(excludes...),
		repotext.WithMaxFileSizeKB(maxKB),
	}
	if describeGitignore {
		opts = append(opts, repotext.WithGitignore())
	}
	if !quiet {
		opts = append(opts, repotext.WithWarnFunc(func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
		}))
	}
	if progress := progressFunc(); progress != nil {
		opts = append(opts, repotext.WithProgress(progress))
	}

	rep, err := repotext.Generate(source, opts...)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	if err := report.Write(outPath, rep.Text); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	if quiet {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, s.success.Sprintf("Success! File '%s' has been created.", outPath))
	c := rep.Counters
	fmt.Fprintf(out, "%s %s files, %s binary skipped, %s size skipped, %s read errors\n",
		s.heading.Sprint("Summary:"),
		s.number.Sprintf("%d", c.Processed),
		s.number.Sprintf("%d", c.SkippedBinary),
		s.number.Sprintf("%d", c.SkippedSize),
		s.number.Sprintf("%d", c.ReadErrors))
	if c.ExcludedDirs > 0 || c.ExcludedFiles > 0 {
		fmt.Fprintf(out, "%s %s dirs, %s files\n",
			s.heading.Sprint("Excluded:"),
			s.number.Sprintf("%d", c.ExcludedDirs),
			s.number.Sprintf("%d", c.ExcludedFiles))
	}

	return nil
}

// loadDescribeConfig loads the explicit config file, or the default one
// when present.
func loadDescribeConfig() (*config.Config, error) {
	if describeConfigPath != "" {
		return config.Load(describeConfigPath)
	}
	return config.LoadDefault()
}

// setupColor applies the --color flag the same way for all output.
func setupColor() {
	switch describeColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
}

// progressFunc returns the rolling progress callback for interactive
// runs, or nil when progress would be noise (verbose, quiet, no TTY).
func progressFunc() func(done, total int) {
	if verbose || quiet || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return func(done, total int) {
		if done%20 == 0 || done == total {
			fmt.Fprintf(os.Stderr, "\r  Processed %d/%d files...", done, total)
		}
		if done == total {
			fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 40))
		}
	}
}
