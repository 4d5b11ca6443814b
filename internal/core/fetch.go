package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrUnexpectedStatus is returned when a sheet URL answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// ErrUnsupportedSource is returned for sources that are neither http(s) URLs nor files.
var ErrUnsupportedSource = errors.New("unsupported sheet source")

// Fetcher opens the body of a sheet source. Callers close the body.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (io.ReadCloser, error)
}

// SourceFetcher fetches http and https URLs with an HTTP client and reads
// anything else (a bare path or a file:// URL) from the local filesystem.
type SourceFetcher struct {
	client *http.Client
}

// NewSourceFetcher returns a fetcher using client, or a client without a
// timeout when client is nil. Fetches are then bounded only by the context.
func NewSourceFetcher(client *http.Client) *SourceFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &SourceFetcher{client: client}
}

// Fetch implements Fetcher.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}

	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return openFile(source)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.fetchHTTP(ctx, source)
	case "file":
		return openFile(u.Path)
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}

func (f *SourceFetcher) fetchHTTP(ctx context.Context, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: %w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet file: %w", err)
	}
	return file, nil
}
