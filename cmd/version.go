package cmd

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=v1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pagemd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pagemd %s (%s)\n",
			color.New(color.FgGreen, color.Bold).Sprint(Version), runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
