package downloader

import (
	"io"
	"sync/atomic"
)

// Stats is shared between the transfer and its observers.
type Stats struct {
	BytesWritten atomic.Int64
}

type countingWriter struct {
	w          io.Writer
	stats      *Stats
	onProgress ProgressFunc
}

func (c *countingWriter) Write(p []byte) (int, error) {
	var written int
	for written < len(p) {
		n, err := c.w.Write(p[written:])
		written += n
		if n > 0 {
			if c.stats != nil {
				c.stats.BytesWritten.Add(int64(n))
			}
			if c.onProgress != nil {
				c.onProgress(int64(n))
			}
		}
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}
