// Package source downloads remote markup documents over HTTP with
// conditional-request caching, so repeated fetches of an unchanged
// document are served locally.
package source

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/samber/oops"
	"resty.dev/v3"
)

const userAgent = "marq-fetch"

// Result is the outcome of a Fetch.
type Result struct {
	Body      string
	FromCache bool
	ETag      string
	LastMod   string
}

// Options controls a single fetch.
type Options struct {
	// Force skips conditional headers and always re-downloads.
	Force bool
}

// Fetcher downloads documents. With a cache directory configured it issues
// If-None-Match / If-Modified-Since requests and serves 304 responses from
// the local cache.
type Fetcher struct {
	client *resty.Client
	cache  *cache
}

func NewFetcher(cacheDir string, timeout time.Duration) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	f := &Fetcher{client: client}
	if cacheDir != "" {
		f.cache = newCache(cacheDir)
	}
	return f
}

func (f *Fetcher) Close() error {
	return f.client.Close()
}

func (f *Fetcher) Fetch(ctx context.Context, url string, opts Options) (*Result, error) {
	var prev *cacheEntry
	if f.cache != nil && !opts.Force {
		prev = f.cache.lookup(url)
	}

	request := f.client.R().SetContext(ctx)
	if prev != nil {
		if prev.ETag != "" {
			request.SetHeader("If-None-Match", prev.ETag)
		}
		if prev.LastMod != "" {
			request.SetHeader("If-Modified-Since", prev.LastMod)
		}
	}

	response, err := request.Get(url)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("url", url).
			Wrapf(err, "downloading document")
	}

	if response.StatusCode() == http.StatusNotModified && prev != nil {
		return &Result{
			Body:      prev.Body,
			FromCache: true,
			ETag:      prev.ETag,
			LastMod:   prev.LastMod,
		}, nil
	}

	if !response.IsSuccess() {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("url", url).
			With("status", response.StatusCode()).
			Errorf("document fetch returned non-success status %d", response.StatusCode())
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("url", url).
			Wrapf(err, "reading response body")
	}

	result := &Result{
		Body:    string(content),
		ETag:    response.Header().Get("ETag"),
		LastMod: response.Header().Get("Last-Modified"),
	}

	if f.cache != nil {
		if storeErr := f.cache.store(url, result); storeErr != nil {
			return nil, storeErr
		}
	}

	return result, nil
}
