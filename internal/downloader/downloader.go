package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0"

// callback types
type ProgressFunc func(n int64)
type DoneFunc func()
type ErrorFunc func(err error)

type Callbacks struct {
	OnProgress ProgressFunc
	OnDone     DoneFunc
	OnError    ErrorFunc
}

type Request struct {
	URL    string
	Output string
}

// Download fetches req.URL into req.Output and returns the path written.
// When req.Output is an existing directory the file is placed inside it.
// Every failure is reported both through cb.OnError and the returned error.
func Download(ctx context.Context, client *http.Client, req Request, stats *Stats, cb Callbacks, log *zap.Logger) (string, error) {
	output, err := download(ctx, client, req, stats, cb.OnProgress, log)
	if err != nil {
		if cb.OnError != nil {
			cb.OnError(err)
		}
		return "", err
	}
	if cb.OnDone != nil {
		cb.OnDone()
	}
	return output, nil
}

func download(ctx context.Context, client *http.Client, r Request, stats *Stats, onProgress ProgressFunc, log *zap.Logger) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %q - %w", r.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	log.Debug("starting download", zap.String("url", r.URL), zap.String("output", r.Output))

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed - %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	output := targetPath(r.Output, resp.Request.URL, resp)
	file, err := os.Create(output)
	if err != nil {
		return "", fmt.Errorf("failed to create the file %q - %w", output, err)
	}
	defer file.Close()

	dst := &countingWriter{w: file, stats: stats, onProgress: onProgress}
	n, err := copy(resp.Body, dst)
	if err != nil {
		return "", fmt.Errorf("failed to write %q - %w", output, err)
	}

	log.Debug("download finished", zap.String("output", output), zap.Int64("bytes", n))
	return output, nil
}

// Probe issues a HEAD request. The size is -1 when the server does not
// report one; any status other than 200 is an error.
func Probe(ctx context.Context, client *http.Client, rawURL string) (int64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return -1, false, fmt.Errorf("failed to build request for %q - %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return -1, false, fmt.Errorf("request failed - %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return -1, false, fmt.Errorf("bad status: %s", resp.Status)
	}

	acceptRanges := resp.Header.Get("Accept-Ranges") == "bytes"
	return resp.ContentLength, acceptRanges, nil
}

// <== Helper Functions ==>

// targetPath treats an existing directory as the place to put the file
// under its server-suggested name.
func targetPath(output string, u *url.URL, resp *http.Response) string {
	fi, err := os.Stat(output)
	if err != nil || !fi.IsDir() {
		return output
	}
	return filepath.Join(output, getFileName(u, resp))
}

func getFileName(u *url.URL, resp *http.Response) string {
	contentDisposition := resp.Header.Get("Content-Disposition")

	if contentDisposition != "" {
		_, params, err := mime.ParseMediaType(contentDisposition)
		if err == nil {
			if fname, ok := params["filename"]; ok {
				return filepath.Base(fname)
			}
		}
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		return "index.html"
	}
	return name
}

func copy(src io.Reader, dst io.Writer) (int64, error) {
	var totalWritten int64
	buf := make([]byte, 32*1024)

	for {
		nread, rerr := src.Read(buf)
		if nread > 0 {
			nwrite, werr := dst.Write(buf[:nread])
			totalWritten += int64(nwrite)
			if werr != nil {
				return totalWritten, werr
			}
		}

		if rerr != nil {
			if rerr == io.EOF {
				return totalWritten, nil
			}
			return totalWritten, rerr
		}
	}
}
