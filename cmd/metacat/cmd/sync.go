package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metacat-io/metacat/pkg/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the local record set against the remote repository",
	Long: `Synchronize the local record set against the remote repository.

Only changed or new record configurations are fetched; everything else is
served from the local cache. Any single failure aborts the whole sync:
the cache and the last consistent snapshot are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cc := newCache(config)
		if err := cc.Initialize(); err != nil {
			wrapFatalln("failed to open local cache", err)
			return
		}
		defer func() { _ = cc.Close() }()

		s := newStore(config, cc)

		var opts []store.PopulateOption
		if len(syncFlags.include) > 0 {
			opts = append(opts, store.Include(syncFlags.include...))
		}
		if len(syncFlags.exclude) > 0 {
			opts = append(opts, store.Exclude(syncFlags.exclude...))
		}
		if syncFlags.related {
			opts = append(opts, store.IncludeRelated())
		}

		if err := s.Populate(context.Background(), opts...); err != nil {
			wrapFatalln("sync failed", err)
			return
		}
		fmt.Printf("synchronized %d records at commit %s\n", len(s.Summaries()), s.HeadCommit())
	},
}

var syncFlags struct {
	include []string
	exclude []string
	related bool
}

func init() {
	syncCmd.Flags().StringSliceVar(&syncFlags.include, "include", nil, "restrict sync to these record identifiers")
	syncCmd.Flags().StringSliceVar(&syncFlags.exclude, "exclude", nil, "exclude these record identifiers (takes precedence)")
	syncCmd.Flags().BoolVar(&syncFlags.related, "related", false, "expand the scope across related records")
	rootCmd.AddCommand(syncCmd)
}
