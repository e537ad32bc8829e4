// =============================================================================
// Post File Merger - Merge Command
// =============================================================================
//
// This file defines the 'merge' command, which runs the full consolidation
// pipeline for one base directory.
//
// COMMAND USAGE:
//   postmerge merge --base-dir DIR
//
// The command is a thin presentation shell: it builds the log sink, loads
// the configuration, and invokes the pipeline once. All business decisions
// live in internal/pipeline.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/pipeline"
)

// baseDir is the directory holding the reference workbook, sender workbook,
// and Input/Output subdirectories.
var baseDir string

// mergeCmd represents the 'merge' command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge all input files under the base directory into one workbook",
	Long: `The merge command loads the pincode reference table and sender details from
the base directory, processes every recognized file in its Input folder, and
writes one consolidated workbook to its Output folder.

Per-file errors do not stop the run; the affected file contributes zero rows
and is counted in the summary. The run aborts without writing anything when
the reference table is unusable or the Input folder is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMerge()
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(
		&baseDir,
		"base-dir",
		".",
		"Base directory containing the reference files and the Input folder",
	)
}

// runMerge wires the configuration and log sink and executes the pipeline.
func runMerge() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sink, closeSink, err := buildSink(cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	start := time.Now()
	stats := pipeline.Run(cfg, baseDir, sink)

	fmt.Println()
	fmt.Println("=== Processing Complete ===")
	fmt.Printf("Files found:     %d\n", stats.FilesFound)
	fmt.Printf("Processed:       %d\n", stats.Processed)
	fmt.Printf("Errors:          %d\n", stats.Errors)
	fmt.Printf("Output rows:     %d\n", stats.Rows)
	fmt.Printf("Time elapsed:    %s\n", time.Since(start))

	if stats.Fatal {
		return fmt.Errorf("run aborted; see log output above")
	}
	return nil
}

// loadConfig loads the configuration file when it exists and falls back to
// the built-in defaults otherwise. An unreadable or malformed file is still
// an error; only absence is tolerated.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildSink returns the log sink for the run: stdout, plus a copy appended
// to the configured log file when one is set.
func buildSink(cfg *config.Config) (pipeline.Sink, func(), error) {
	if cfg.LogFile == "" {
		return func(msg string) { fmt.Println(msg) }, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	sink := func(msg string) {
		fmt.Println(msg)
		fmt.Fprintln(f, msg)
	}
	return sink, func() { f.Close() }, nil
}
