package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the comicwatch release, plus the commit and build date when the
binary was built with them stamped in through -ldflags.`,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout())
	},
}

func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "comicwatch %s\n", version)
	if commit != "" {
		fmt.Fprintf(w, "  commit: %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(w, "  built:  %s\n", date)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
