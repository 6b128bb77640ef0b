package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "cards/abc-123.pdf", ObjectKey("abc-123"))
}

func TestURLResolution(t *testing.T) {
	// minio.New only parses the endpoint; no connection is made here.
	p, err := NewPublisher("localhost:9000", "key", "secret", "arrival-cards",
		"https://files.example.gov/", false)
	require.NoError(t, err)

	// The trailing slash on the base URL must not double up.
	assert.Equal(t,
		"https://files.example.gov/arrival-cards/cards/abc-123.pdf",
		p.URL(ObjectKey("abc-123")))
}

func TestNewPublisherRejectsBadEndpoint(t *testing.T) {
	_, err := NewPublisher("http://bad endpoint", "key", "secret", "b", "https://x", false)
	require.Error(t, err)
}

// fakeObjectStore stands in for the S3 endpoint.  headStatus controls the
// answer to the existence probe; uploads are recorded for assertions.
type fakeObjectStore struct {
	headStatus int
	putBody    []byte
	putPath    string
}

func (f *fakeObjectStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Bucket-location probes are answered with a fixed region.
	if r.URL.RawQuery == "location=" || strings.Contains(r.URL.RawQuery, "location") {
		fmt.Fprint(w, `<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
		return
	}
	switch r.Method {
	case http.MethodHead:
		if f.headStatus == http.StatusOK {
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.Header().Set("Content-Length", "42")
		}
		w.WriteHeader(f.headStatus)
	case http.MethodPut:
		f.putPath = r.URL.Path
		f.putBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func newTestPublisher(t *testing.T, store *fakeObjectStore) *Publisher {
	t.Helper()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	p, err := NewPublisher(strings.TrimPrefix(srv.URL, "http://"),
		"key", "secret", "arrival-cards", "http://cdn.local", false)
	require.NoError(t, err)
	return p
}

func TestPublishRefusesOverwrite(t *testing.T) {
	store := &fakeObjectStore{headStatus: http.StatusOK}
	p := newTestPublisher(t, store)

	_, _, err := p.Publish(context.Background(), "abc-123", []byte("%PDF-1.4 card"))
	require.ErrorIs(t, err, ErrObjectExists)
	assert.Empty(t, store.putBody, "an existing object must never be replaced")
}

func TestPublishUploadsWhenAbsent(t *testing.T) {
	store := &fakeObjectStore{headStatus: http.StatusNotFound}
	p := newTestPublisher(t, store)

	pdf := []byte("%PDF-1.4 card")
	key, url, err := p.Publish(context.Background(), "abc-123", pdf)
	require.NoError(t, err)
	assert.Equal(t, "cards/abc-123.pdf", key)
	assert.Equal(t, "http://cdn.local/arrival-cards/cards/abc-123.pdf", url)
	// Plain-HTTP uploads are chunk-signed, so the recorded body wraps the
	// payload in signature framing rather than carrying it verbatim.
	assert.Contains(t, string(store.putBody), string(pdf))
	assert.Contains(t, store.putPath, "cards/abc-123.pdf")
}
