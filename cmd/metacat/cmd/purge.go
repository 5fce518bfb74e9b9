package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop the local record cache",
	Long: `Drop the local record cache.

The next sync rebuilds it in full from the remote repository. Purging is
also implicit whenever the configured endpoint, project or ref change.`,
	Run: func(cmd *cobra.Command, args []string) {
		cc := newCache(config)
		if err := cc.Initialize(); err != nil {
			wrapFatalln("failed to open local cache", err)
			return
		}
		defer func() { _ = cc.Close() }()

		if err := cc.Purge(); err != nil {
			wrapFatalln("purge failed", err)
			return
		}
		fmt.Println("local cache purged")
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
