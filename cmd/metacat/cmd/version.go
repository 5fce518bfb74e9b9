package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is replaced at link time on release builds
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the metacat version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
