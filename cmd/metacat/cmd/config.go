package cmd

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/metacat-io/metacat/pkg/cache"
	"github.com/metacat-io/metacat/pkg/cache/bdgr"
	"github.com/metacat-io/metacat/pkg/dlogger"
	"github.com/metacat-io/metacat/pkg/source"
	"github.com/metacat-io/metacat/pkg/source/gitlab"
	"github.com/metacat-io/metacat/pkg/source/localfs"
	"github.com/metacat-io/metacat/pkg/store"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Endpoint    string `json:"endpoint" yaml:"endpoint"`
	Token       string `json:"token" yaml:"token"`
	Project     string `json:"project" yaml:"project"`
	Ref         string `json:"ref" yaml:"ref"`
	Cache       string `json:"cache" yaml:"cache"`
	Parallelism int    `json:"parallelism" yaml:"parallelism"`
	LogLevel    string `json:"loglevel" yaml:"loglevel"`
}

var config *CLIConfig

func newConfig() (*CLIConfig, error) {
	var c CLIConfig
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}
	// reject a bad log level here, so wiring may use dlogger.MustNew
	if _, err := dlogger.New(c.LogLevel); err != nil {
		return nil, err
	}
	return &c, nil
}

// newSource binds the configured remote coordinates. An endpoint that
// is a local path (or file:// URL) yields a localfs source over a
// checked-out tree, useful for offline work.
func newSource(c *CLIConfig) source.Source {
	switch {
	case strings.HasPrefix(c.Endpoint, "file://"):
		return localfs.New(afero.NewBasePathFs(afero.NewOsFs(), strings.TrimPrefix(c.Endpoint, "file://")),
			localfs.Project(c.Project))
	case strings.HasPrefix(c.Endpoint, "/"), strings.HasPrefix(c.Endpoint, "."):
		return localfs.New(afero.NewBasePathFs(afero.NewOsFs(), c.Endpoint),
			localfs.Project(c.Project))
	default:
		return gitlab.New(c.Endpoint, c.Project,
			gitlab.Token(c.Token),
			gitlab.Logger(dlogger.MustNew(c.LogLevel)),
		)
	}
}

func newCache(c *CLIConfig) cache.Cache {
	return bdgr.New(c.Cache)
}

func newStore(c *CLIConfig, cc cache.Cache) *store.GitStore {
	return store.NewGitStore(newSource(c), cc, c.Ref,
		store.Logger(dlogger.MustNew(c.LogLevel)),
		store.ConcurrentFetches(c.Parallelism),
	)
}
