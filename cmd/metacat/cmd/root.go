// Package cmd implements the metacat command line interface.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metacat",
	Short: "metacat keeps a local, queryable copy of a metadata catalogue in sync",
	Long: `metacat synchronizes the records of a geospatial metadata catalogue from
their authoritative, version-controlled home in a remote repository.

A persistent local cache keyed by content hash makes repeated syncs cheap:
unchanged records are never re-downloaded or re-parsed. Downstream
consumers (exporters, verifiers) query the synchronized set by identifier,
optionally expanding related records across cross-references.
`,
}

// used to patch over calls to os.Exit() during test
var logFatalln = log.Fatalln
var osExit = os.Exit

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("endpoint", "", "remote repository endpoint URL (or a local path for a checked-out tree)")
	flags.String("token", "", "bearer token for the remote repository API")
	flags.String("project", "", "project identifier holding the record configurations")
	flags.String("ref", "main", "branch or ref to synchronize from")
	flags.String("cache", defaultCachePath(), "path to the local record cache")
	flags.Int("parallelism", 1, "parallel fetch limit during sync")
	flags.String("loglevel", "info", "log level (debug|info|none)")

	_ = viper.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = viper.BindPFlag("token", flags.Lookup("token"))
	_ = viper.BindPFlag("project", flags.Lookup("project"))
	_ = viper.BindPFlag("ref", flags.Lookup("ref"))
	_ = viper.BindPFlag("cache", flags.Lookup("cache"))
	_ = viper.BindPFlag("parallelism", flags.Lookup("parallelism"))
	_ = viper.BindPFlag("loglevel", flags.Lookup("loglevel"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfg := os.Getenv("METACAT_CONFIG"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.metacat")
		viper.AddConfigPath("/etc/metacat")
		viper.SetConfigName("metacat")
	}

	viper.SetEnvPrefix("metacat")
	viper.AutomaticEnv() // read in environment variables that match
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".metacat/cache"
	}
	return home + "/.metacat/cache"
}
