package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const _maxVideoSize = 512 * 1024 * 1024 // 512 MB

// HTTPFetcher downloads remote clips to local files
type HTTPFetcher struct {
	logger  *zap.Logger
	client  *http.Client
	maxSize int64
}

// NewHTTPFetcher creates a new HTTP-based fetcher instance
func NewHTTPFetcher(logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		logger: logger,
		client: &http.Client{
			// Clips are large; only bound the wait for the server to answer
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: 15 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		maxSize: _maxVideoSize,
	}
}

// Download writes the body at url to dest, replacing it atomically.
// It returns the number of bytes written.
func (f *HTTPFetcher) Download(ctx context.Context, url, dest string) (int64, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return 0, fmt.Errorf("unsupported protocol: %s", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "ledboardDaemon/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "application/octet-stream") {
		return 0, fmt.Errorf("url is not a video: %s", contentType)
	}

	if resp.ContentLength > f.maxSize {
		return 0, fmt.Errorf("video too large: %d bytes", resp.ContentLength)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	// Read one byte past the limit to detect oversized bodies without a Content-Length
	written, err := io.Copy(tmp, io.LimitReader(resp.Body, f.maxSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read body: %w", err)
	}
	if written > f.maxSize {
		return 0, fmt.Errorf("video too large: more than %d bytes", f.maxSize)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("failed to store download: %w", err)
	}

	f.logger.Debug("Video fetched successfully", zap.Int64("bytes", written), zap.String("url", url))
	return written, nil
}
