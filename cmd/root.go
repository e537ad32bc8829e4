// =============================================================================
// Post File Merger - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the 'merge' and 'version' commands attach to.
//
// COBRA CLI STRUCTURE:
//   postmerge
//   ├── merge   (postmerge merge --base-dir DIR)
//   └── version (postmerge version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the run configuration file. The file is
// optional; when it does not exist the built-in defaults apply.
var cfgFile string

// verbose enables verbose output when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "postmerge",
	Short: "Post File Merger - Consolidate sender shipment files into one normalized workbook",
	Long: `Post File Merger consolidates heterogeneous per-sender shipment and address
files (spreadsheets or tab-delimited text) into a single normalized workbook,
enriching every record with a destination city resolved from the pincode
reference table and with sender metadata looked up by filename.

The base directory is expected to contain:
  - 'PIN.xlsx' with pincode and city data
  - 'Sender Address.xlsx' with sender information
  - an 'Input' folder with the files to process
An 'Output' folder is created there if it does not exist.

Example Usage:
  postmerge merge --base-dir /data/post      # Merge everything under /data/post
  postmerge merge --config ./postmerge.yaml  # Use a custom configuration file`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"postmerge.yaml",
		"Path to the run configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
