package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List synchronized records",
	Run: func(cmd *cobra.Command, args []string) {
		cc := newCache(config)
		if err := cc.Initialize(); err != nil {
			wrapFatalln("failed to open local cache", err)
			return
		}
		defer func() { _ = cc.Close() }()

		s := newStore(config, cc)
		if err := s.Populate(context.Background()); err != nil {
			wrapFatalln("sync failed", err)
			return
		}

		for _, summary := range s.Summaries() {
			fmt.Printf("%s , %s , %s , %s\n",
				summary.FileIdentifier, summary.HierarchyLevel, summary.Title, summary.Edition)
		}
	},
}

func init() {
	rootCmd.AddCommand(recordListCmd)
}
