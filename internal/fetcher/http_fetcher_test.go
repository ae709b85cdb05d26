package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPFetcher_Download(t *testing.T) {
	tests := []struct {
		name           string
		contentType    string
		responseBody   []byte
		statusCode     int
		maxSize        int64
		url            string
		ctxFunc        func() (context.Context, context.CancelFunc)
		expectedError  string
		expectedLength int64
	}{
		{
			name:           "Success - MP4",
			contentType:    "video/mp4",
			responseBody:   []byte("fake-video-data"),
			statusCode:     http.StatusOK,
			expectedLength: 15,
		},
		{
			name:           "Success - Octet Stream",
			contentType:    "application/octet-stream",
			responseBody:   []byte("bytes"),
			statusCode:     http.StatusOK,
			expectedLength: 5,
		},
		{
			name:          "Error - 404 Not Found",
			contentType:   "video/mp4",
			statusCode:    http.StatusNotFound,
			expectedError: "unexpected status code: 404",
		},
		{
			name:          "Error - Invalid Content Type",
			contentType:   "text/html",
			responseBody:  []byte("<html>login</html>"),
			statusCode:    http.StatusOK,
			expectedError: "url is not a video",
		},
		{
			name:          "Error - Response Too Large",
			contentType:   "video/webm",
			responseBody:  []byte(strings.Repeat("a", 2048)),
			statusCode:    http.StatusOK,
			maxSize:       1024,
			expectedError: "video too large",
		},
		{
			name:          "Error - Unsupported Protocol",
			url:           "ftp://example.com/clip.mp4",
			expectedError: "unsupported protocol",
		},
		{
			name: "Error - Context Cancelled",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel() // Cancel immediately
				return ctx, cancel
			},
			expectedError: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write(tt.responseBody)
			}))
			defer server.Close()

			var ctx context.Context
			var cancel context.CancelFunc
			if tt.ctxFunc != nil {
				ctx, cancel = tt.ctxFunc()
			} else {
				ctx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
			}
			defer cancel()

			fetcher := NewHTTPFetcher(zap.NewNop())
			if tt.maxSize > 0 {
				fetcher.maxSize = tt.maxSize
			}

			url := server.URL
			if tt.url != "" {
				url = tt.url
			}
			dest := filepath.Join(t.TempDir(), "cache", "clip.mp4")

			n, err := fetcher.Download(ctx, url, dest)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
					t.Error("failed download must not leave a file behind")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tt.expectedLength {
				t.Errorf("expected %d bytes, got %d", tt.expectedLength, n)
			}

			data, err := os.ReadFile(dest)
			if err != nil {
				t.Fatalf("downloaded file missing: %v", err)
			}
			if string(data) != string(tt.responseBody) {
				t.Errorf("unexpected content %q", data)
			}
		})
	}
}
