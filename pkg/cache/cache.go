// Package cache manages the local copies of the source documents.

/*
./datasources: the cache directory (--datasources); the ModTime represents the last updated time
  pcc_projects.yaml       (written by `lifecycle-audit fetch-pcc`, never fetched here)
  landscape.yml
  clomonitor.yaml
  project-maintainers.csv
  devstats.html
  artwork.md

A cached file is trusted as-is; `lifecycle-audit update` refreshes them.
*/

package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/netutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
)

type ProgressEvent struct {
	Message string `json:"message,omitempty"`
}

type ProgressEventHandler func(context.Context, ProgressEvent)

func DefaultProgressEventHandler(ctx context.Context, ev ProgressEvent) {
	slog.DebugContext(ctx, "progress: "+ev.Message)
}

// DefaultDir is relative to the current directory.
const DefaultDir = "datasources"

type opts struct {
	dir        string
	onProgress ProgressEventHandler
	httpClient *http.Client
	httpOpts   []netutil.HTTPOpt
}

type Opt func(*opts) error

func WithDir(dir string) Opt {
	return func(opts *opts) error {
		opts.dir = dir
		return nil
	}
}

func WithProgressEventHandler(onProgress ProgressEventHandler) Opt {
	return func(opts *opts) error {
		opts.onProgress = onProgress
		return nil
	}
}

func WithHTTPClient(httpClient *http.Client) Opt {
	return func(opts *opts) error {
		opts.httpClient = httpClient
		return nil
	}
}

// WithHTTPOpts appends options to every fetch.
func WithHTTPOpts(o ...netutil.HTTPOpt) Opt {
	return func(opts *opts) error {
		opts.httpOpts = append(opts.httpOpts, o...)
		return nil
	}
}

// New instantiates [Cache].
func New(o ...Opt) (*Cache, error) {
	var c Cache
	for _, f := range o {
		if err := f(&c.opts); err != nil {
			return nil, err
		}
	}
	if c.opts.dir == "" {
		c.opts.dir = DefaultDir
	}
	if c.opts.onProgress == nil {
		c.opts.onProgress = DefaultProgressEventHandler
	}
	if c.opts.httpClient == nil {
		c.opts.httpClient = http.DefaultClient
	}
	return &c, nil
}

// Cache implements [source.Loader].
type Cache struct {
	opts
}

var _ source.Loader = (*Cache)(nil)

func (c *Cache) httpOpts() []netutil.HTTPOpt {
	return append([]netutil.HTTPOpt{
		netutil.WithHTTPClient(c.httpClient),
		netutil.WithAutoGitHubToken(),
	}, c.opts.httpOpts...)
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the path of the cached copy of doc.
func (c *Cache) Path(doc source.Document) string {
	return filepath.Join(c.dir, filepath.Base(doc.Filename))
}

// LastUpdated returns the last updated time.
// LastUpdated returns [fs.ErrNotExist] on the first run.
func (c *Cache) LastUpdated() (time.Time, error) {
	st, err := os.Stat(c.dir)
	if err != nil {
		return time.Time{}, err
	}
	return st.ModTime(), nil
}

// Load returns the cached copy of doc, fetching and persisting it on the first run.
func (c *Cache) Load(ctx context.Context, doc source.Document) ([]byte, error) {
	p := c.Path(doc)
	b, err := os.ReadFile(p)
	if err == nil {
		slog.DebugContext(ctx, "using the cached document", "name", doc.Name, "path", p)
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return c.fetch(ctx, doc)
}

// Update fetches docs regardless of the cached copies.
func (c *Cache) Update(ctx context.Context, docs ...source.Document) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, doc := range docs {
		g.Go(func() error {
			_, err := c.fetch(ctx, doc)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(c.dir, now, now)
}

func (c *Cache) fetch(ctx context.Context, doc source.Document) ([]byte, error) {
	if doc.URL == "" {
		return nil, fmt.Errorf("%s: no URL to fetch from", doc.Name)
	}
	b, err := netutil.Get(ctx, doc.URL, c.httpOpts()...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", doc.Name, err)
	}
	if err = c.persist(doc, b); err != nil {
		return nil, err
	}
	c.onProgress(ctx, ProgressEvent{
		Message: fmt.Sprintf("%s: fetched %d bytes from %s", doc.Name, len(b), doc.URL),
	})
	return b, nil
}

func (c *Cache) persist(doc source.Document, b []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(c.dir, "."+filepath.Base(doc.Filename)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(f.Name(), c.Path(doc))
}
