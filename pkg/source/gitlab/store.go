// Package gitlab implements a record source against the REST API of a
// GitLab-style repository server: tree listings provide content hashes
// without fetching payloads, so unchanged records are never re-downloaded.
package gitlab

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/source"
	"github.com/metacat-io/metacat/pkg/source/status"
)

const (
	defaultRecordsPath = "records"
	defaultTimeout     = 30 * time.Second
	defaultRetries     = 3
	perPage            = 100
)

// New builds a source listing record configurations from a project
// hosted on a GitLab-style server
func New(endpoint, project string, opts ...Option) source.Source {
	g := &gitlabSource{
		endpoint:    endpoint,
		project:     project,
		recordsPath: defaultRecordsPath,
		timeout:     defaultTimeout,
		retries:     defaultRetries,
		client:      http.DefaultClient,
		l:           zap.NewNop(),
	}
	for _, apply := range opts {
		apply(g)
	}
	return g
}

type gitlabSource struct {
	endpoint    string
	project     string
	token       string
	recordsPath string
	timeout     time.Duration
	retries     int
	client      *http.Client
	l           *zap.Logger
}

func (g *gitlabSource) String() string {
	return "gitlab://" + g.endpoint + "/" + g.project
}

func (g *gitlabSource) Endpoint() string { return g.endpoint }
func (g *gitlabSource) Project() string  { return g.project }

// treeEntry is one element of a repository tree listing
type treeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

type commitInfo struct {
	ID string `json:"id"`
}

func (g *gitlabSource) List(ctx context.Context, ref string) ([]source.FileInfo, error) {
	infos := make([]source.FileInfo, 0, perPage)
	seen := make(map[string]string)
	page := 1
	for page > 0 {
		q := url.Values{}
		q.Set("ref", ref)
		q.Set("path", g.recordsPath)
		q.Set("recursive", "true")
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("page", strconv.Itoa(page))

		var entries []treeEntry
		next := ""
		err := g.call(ctx, g.apiPath("repository/tree")+"?"+q.Encode(), func(resp *http.Response) error {
			next = resp.Header.Get("X-Next-Page")
			return jsoniter.NewDecoder(resp.Body).Decode(&entries)
		})
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Type != "blob" {
				continue
			}
			id := model.IdentifierFromPath(entry.Path)
			if id == "" {
				continue
			}
			if prev, dup := seen[id]; dup {
				return nil, status.ErrDuplicateIdentifier.WrapMessage(
					"%q claimed by both %q and %q", id, prev, entry.Path)
			}
			seen[id] = entry.Path
			infos = append(infos, source.FileInfo{
				Identifier:  id,
				ContentHash: entry.ID,
				Path:        entry.Path,
			})
		}
		page = 0
		if next != "" {
			page, _ = strconv.Atoi(next)
		}
	}
	g.l.Debug("listed remote records", zap.String("ref", ref), zap.Int("count", len(infos)))
	return infos, nil
}

func (g *gitlabSource) Fetch(ctx context.Context, ref, pth string) (io.ReadCloser, error) {
	// without an explicit ref the server would serve the default branch,
	// caching the wrong bytes under the listed content hash
	q := url.Values{}
	q.Set("ref", ref)

	var payload []byte
	err := g.call(ctx, g.apiPath("repository/files/"+url.PathEscape(pth)+"/raw")+"?"+q.Encode(), func(resp *http.Response) error {
		var err error
		payload, err = ioutil.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(bytes.NewReader(payload)), nil
}

func (g *gitlabSource) HeadCommit(ctx context.Context, ref string) (string, error) {
	var commit commitInfo
	err := g.call(ctx, g.apiPath("repository/commits/"+url.PathEscape(ref)), func(resp *http.Response) error {
		return jsoniter.NewDecoder(resp.Body).Decode(&commit)
	})
	if err != nil {
		return "", err
	}
	if commit.ID == "" {
		return "", status.ErrInvalidRef.WrapMessage("ref %q resolved to no commit", ref)
	}
	return commit.ID, nil
}

func (g *gitlabSource) apiPath(suffix string) string {
	return fmt.Sprintf("%s/api/v4/projects/%s/%s", g.endpoint, url.PathEscape(g.project), suffix)
}

// call performs one API call with retries on transient failures.
// The consume callback runs on a 2xx response only.
func (g *gitlabSource) call(ctx context.Context, rawurl string, consume func(*http.Response) error) error {
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawurl, nil)
		if err != nil {
			return backoff.Permanent(status.ErrSourceUnavailable.Wrap(err))
		}
		if g.token != "" {
			req.Header.Set("Authorization", "Bearer "+g.token)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			return status.ErrSourceUnavailable.Wrap(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(status.ErrNotFound.WrapMessage("%s", rawurl))
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(status.ErrSourceUnavailable.WrapMessage("authentication rejected (%d)", resp.StatusCode))
		case resp.StatusCode >= 500:
			// server-side hiccup, worth another attempt
			return status.ErrSourceUnavailable.WrapMessage("remote returned %d", resp.StatusCode)
		case resp.StatusCode >= 300:
			return backoff.Permanent(status.ErrSourceUnavailable.WrapMessage("remote returned %d", resp.StatusCode))
		}

		if err := consume(resp); err != nil {
			return backoff.Permanent(status.ErrSourceUnavailable.Wrap(err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(g.retries-1)),
		ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		g.l.Warn("remote call failed", zap.String("url", rawurl), zap.Error(err))
		return err
	}
	return nil
}
