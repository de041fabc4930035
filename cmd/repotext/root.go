package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "repotext",
	Short: "Repotext - turn a repository archive into one readable text file",
	Long: `Repotext unpacks a repository zip archive (or clones a git URL), walks the
tree, and writes a single text report: the directory structure followed by
the contents of every non-binary file, honoring exclusion patterns and an
optional file size limit.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
