package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/g5becks/marq/internal/source"
)

func newEtagServer(t *testing.T, body, etag string) (*httptest.Server, *int) {
	t.Helper()

	downloads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		downloads++
		w.Header().Set("ETag", etag)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &downloads
}

func TestFetchDownloadsAndCaches(t *testing.T) {
	server, downloads := newEtagServer(t, "<root/>", `"v1"`)
	fetcher := source.NewFetcher(t.TempDir(), 5*time.Second)
	defer func() { _ = fetcher.Close() }()

	first, err := fetcher.Fetch(context.Background(), server.URL, source.Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if first.Body != "<root/>" {
		t.Errorf("Body = %q, want %q", first.Body, "<root/>")
	}

	if first.FromCache {
		t.Errorf("FromCache = true on first fetch, want false")
	}

	second, err := fetcher.Fetch(context.Background(), server.URL, source.Options{})
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	if !second.FromCache {
		t.Errorf("FromCache = false on revalidated fetch, want true")
	}

	if second.Body != "<root/>" {
		t.Errorf("cached Body = %q, want %q", second.Body, "<root/>")
	}

	if *downloads != 1 {
		t.Errorf("downloads = %d, want 1", *downloads)
	}
}

func TestFetchForceSkipsCache(t *testing.T) {
	server, downloads := newEtagServer(t, "<root/>", `"v1"`)
	fetcher := source.NewFetcher(t.TempDir(), 5*time.Second)
	defer func() { _ = fetcher.Close() }()

	for range 2 {
		if _, err := fetcher.Fetch(context.Background(), server.URL, source.Options{Force: true}); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	}

	if *downloads != 2 {
		t.Errorf("downloads = %d, want 2", *downloads)
	}
}

func TestFetchWithoutCacheDir(t *testing.T) {
	server, downloads := newEtagServer(t, "<root/>", `"v1"`)
	fetcher := source.NewFetcher("", 5*time.Second)
	defer func() { _ = fetcher.Close() }()

	for range 2 {
		result, err := fetcher.Fetch(context.Background(), server.URL, source.Options{})
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if result.FromCache {
			t.Errorf("FromCache = true without a cache dir, want false")
		}
	}

	if *downloads != 2 {
		t.Errorf("downloads = %d, want 2", *downloads)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := source.NewFetcher("", 5*time.Second)
	defer func() { _ = fetcher.Close() }()

	_, err := fetcher.Fetch(context.Background(), server.URL, source.Options{})
	if err == nil {
		t.Fatalf("Fetch() error = nil, want DOWNLOAD_FAILED")
	}

	if !strings.Contains(err.Error(), "non-success status") {
		t.Errorf("error = %q, want status failure", err.Error())
	}
}

func TestFetchConnectionError(t *testing.T) {
	fetcher := source.NewFetcher("", time.Second)
	defer func() { _ = fetcher.Close() }()

	_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/doc.xml", source.Options{})
	if err == nil {
		t.Fatalf("Fetch() error = nil, want connection failure")
	}

	if !strings.Contains(err.Error(), "downloading document") {
		t.Errorf("error = %q, want download failure", err.Error())
	}
}
