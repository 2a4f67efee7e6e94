// Package source fetches question documents and loads them into records.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrNotFound is returned by a Fetcher when the reference does not exist.
var ErrNotFound = errors.New("not found")

// Fetcher retrieves the raw bytes of a question document by reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FSFetcher reads references as slash-separated paths within an fs.FS.
type FSFetcher struct {
	FS fs.FS
}

// NewDirFetcher returns an FSFetcher rooted at a directory on disk.
func NewDirFetcher(dir string) *FSFetcher {
	return &FSFetcher{FS: os.DirFS(dir)}
}

// Fetch reads ref from the file system.
func (f *FSFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(f.FS, strings.TrimPrefix(ref, "./"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", ref, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

// MaxDocumentSize caps how much of an HTTP response body is read.
const MaxDocumentSize = 1 << 20

// HTTPFetcher GETs references relative to a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for base. A nil client uses http.DefaultClient.
func NewHTTPFetcher(base string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme %q", base, u.Scheme)
	}
	// Resolve refs inside the base path rather than replacing its last segment.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{base: u, client: client}, nil
}

// Fetch GETs ref. Any non-2xx status is an error; 404 wraps ErrNotFound.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	rel, err := url.Parse(strings.TrimPrefix(ref, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ref %q: %w", ref, err)
	}
	target := f.base.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("get %s: %w", target, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", target, err)
	}
	return data, nil
}
