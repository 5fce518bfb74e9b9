// Package localfs implements a record source over a local file tree.
//
// It is primarily a development and testing aid: a checked-out copy of
// the records repository can be synchronized without network access. The
// head commit is synthesized as a digest over the listing, so an
// unchanged tree resolves to a stable head.
package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/metacat-io/metacat/pkg/errors"
	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/source"
	"github.com/metacat-io/metacat/pkg/source/status"
)

// New creates a source reading record configurations from the given
// file system. A nil fs defaults to the current directory.
func New(fs afero.Fs, opts ...Option) source.Source {
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), ".")
	}
	l := &localFS{
		fs:      fs,
		project: "local",
	}
	for _, apply := range opts {
		apply(l)
	}
	return l
}

// Option alters the behavior of the localfs source
type Option func(*localFS)

// Project overrides the project identifier reported by this source
// (defaults to "local")
func Project(project string) Option {
	return func(l *localFS) {
		l.project = project
	}
}

type localFS struct {
	fs      afero.Fs
	project string
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

func (l *localFS) Endpoint() string { return l.String() }
func (l *localFS) Project() string  { return l.project }

// List walks the tree and hashes every record configuration found.
// The ref is ignored: a local tree has a single state.
func (l *localFS) List(_ context.Context, _ string) ([]source.FileInfo, error) {
	var infos []source.FileInfo
	seen := make(map[string]string)
	err := afero.Walk(l.fs, model.GetPathPrefixToRecords(), func(pth string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		id := model.IdentifierFromPath(pth)
		if id == "" {
			return nil
		}
		if prev, dup := seen[id]; dup {
			return status.ErrDuplicateIdentifier.WrapMessage(
				"%q claimed by both %q and %q", id, prev, pth)
		}
		seen[id] = pth
		data, err := afero.ReadFile(l.fs, pth)
		if err != nil {
			return err
		}
		infos = append(infos, source.FileInfo{
			Identifier:  id,
			ContentHash: model.ContentHash(data),
			Path:        filepath.ToSlash(pth),
		})
		return nil
	})
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, status.ErrNotFound.WrapMessage("records tree %q", model.GetPathPrefixToRecords())
		case errors.Is(err, status.ErrDuplicateIdentifier):
			return nil, err
		}
		return nil, status.ErrSourceUnavailable.Wrap(err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Identifier < infos[j].Identifier })
	return infos, nil
}

func (l *localFS) Fetch(_ context.Context, _ string, pth string) (io.ReadCloser, error) {
	fi, err := l.fs.Stat(pth)
	if err != nil || fi.IsDir() {
		return nil, status.ErrNotFound.WrapMessage("%s", pth)
	}
	f, err := l.fs.Open(pth)
	if err != nil {
		return nil, status.ErrSourceUnavailable.Wrap(err)
	}
	return f, nil
}

// HeadCommit digests the full listing: any content change anywhere in
// the tree yields a new head.
func (l *localFS) HeadCommit(ctx context.Context, ref string) (string, error) {
	infos, err := l.List(ctx, ref)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, info := range infos {
		b.WriteString(info.Path)
		b.WriteString("=")
		b.WriteString(info.ContentHash)
		b.WriteString("\n")
	}
	return model.ContentHash([]byte(b.String())), nil
}
