package gitlab

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option alters the behavior of the gitlab source
type Option func(*gitlabSource)

// Token sets the bearer token presented on every API call
func Token(token string) Option {
	return func(g *gitlabSource) {
		g.token = token
	}
}

// RecordsPath restricts listings to a sub-tree of the repository
// (defaults to "records")
func RecordsPath(pth string) Option {
	return func(g *gitlabSource) {
		g.recordsPath = pth
	}
}

// Timeout bounds every single API call (defaults to 30s)
func Timeout(d time.Duration) Option {
	return func(g *gitlabSource) {
		g.timeout = d
	}
}

// Retries sets the number of attempts for transient failures on a
// single call (defaults to 3)
func Retries(n int) Option {
	return func(g *gitlabSource) {
		if n > 0 {
			g.retries = n
		}
	}
}

// HTTPClient overrides the underlying http client (used in testing)
func HTTPClient(client *http.Client) Option {
	return func(g *gitlabSource) {
		g.client = client
	}
}

// Logger injects a logging facility into the source
func Logger(l *zap.Logger) Option {
	return func(g *gitlabSource) {
		g.l = l
	}
}
