package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var recordGetCmd = &cobra.Command{
	Use:   "get <file-identifier>",
	Short: "Print one synchronized record",
	Args:  cobra.ExactArgs(1),
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

		rev, err := s.SelectOne(args[0])
		if err != nil {
			wrapFatalln("selection failed", err)
			return
		}
		out, err := yaml.Marshal(rev)
		if err != nil {
			wrapFatalln("failed to render record", err)
			return
		}
		fmt.Print(string(out))
	},
}

func init() {
	rootCmd.AddCommand(recordGetCmd)
}
