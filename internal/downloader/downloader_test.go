package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files/payload.bin", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Accept-Ranges", "bytes")
		w.Write([]byte(body))
	})
	mux.HandleFunc("/named", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="report.txt"`)
		w.Write([]byte(body))
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/files/payload.bin", http.StatusFound)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownload(t *testing.T) {
	body := strings.Repeat("downpour", 10000)
	srv := newServer(t, body)

	tests := []struct {
		name string
		path string
	}{
		{"direct", "/files/payload.bin"},
		{"follows redirects", "/redirect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.bin")
			stats := &Stats{}

			var progressed int64
			var done bool
			written, err := Download(context.Background(), srv.Client(), Request{URL: srv.URL + tt.path, Output: out}, stats, Callbacks{
				OnProgress: func(n int64) { progressed += n },
				OnDone:     func() { done = true },
				OnError:    func(err error) { t.Errorf("unexpected error callback: %v", err) },
			}, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, out, written)

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, body, string(got))
			assert.True(t, done)
			assert.Equal(t, int64(len(body)), progressed)
			assert.Equal(t, int64(len(body)), stats.BytesWritten.Load())
		})
	}
}

func TestDownload_IntoDirectory(t *testing.T) {
	srv := newServer(t, "hello")

	dir := t.TempDir()
	written, err := Download(context.Background(), srv.Client(), Request{URL: srv.URL + "/named", Output: dir}, &Stats{}, Callbacks{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.txt"), written)

	got, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	_, err = Download(context.Background(), srv.Client(), Request{URL: srv.URL + "/redirect", Output: dir}, &Stats{}, Callbacks{}, zap.NewNop())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "payload.bin"))
}

func TestDownload_BadStatus(t *testing.T) {
	srv := newServer(t, "")

	var reported error
	_, err := Download(context.Background(), srv.Client(), Request{URL: srv.URL + "/missing", Output: filepath.Join(t.TempDir(), "x")}, &Stats{}, Callbacks{
		OnError: func(err error) { reported = err },
		OnDone:  func() { t.Error("done callback after failure") },
	}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, err, reported)
}

func TestDownload_Canceled(t *testing.T) {
	srv := newServer(t, "data")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Download(ctx, srv.Client(), Request{URL: srv.URL + "/files/payload.bin", Output: filepath.Join(t.TempDir(), "x")}, &Stats{}, Callbacks{}, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProbe(t *testing.T) {
	srv := newServer(t, "12345")

	size, ranges, err := Probe(context.Background(), srv.Client(), srv.URL+"/files/payload.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.True(t, ranges)

	_, ranges, err = Probe(context.Background(), srv.Client(), srv.URL+"/named")
	require.NoError(t, err)
	assert.False(t, ranges)

	size, _, err = Probe(context.Background(), srv.Client(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int64(-1), size)
}
