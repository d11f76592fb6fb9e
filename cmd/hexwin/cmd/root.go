package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hexwin",
	Short: "Inspect, verify and patch Intel HEX memory images",
	Long: `Hexwin works with the Intel HEX text encoding of firmware images over a
fixed [start, end) address window. It can verify record checksums, report
coverage and gaps of sparse images, and splice replacement bytes into an
image before re-emitting it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(patchCmd)
}
