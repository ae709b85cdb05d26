package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/genricoloni/ledboard/internal/config"
	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// FetchVideos returns the rotation in playback order.
// Priority is carried along but does not affect the order.
func (s *Store) FetchVideos(ctx context.Context) ([]domain.VideoItem, error) {
	if s.cfg.GetVideoSource() != config.VideoSourceStore {
		local := s.cfg.GetLocalVideos()
		items := make([]domain.VideoItem, len(local))
		for i, u := range local {
			items[i] = domain.VideoItem{URL: u, Priority: defaultPriority}
		}
		return items, nil
	}

	rows, err := s.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.VideoItem, 0, len(rows))
	for _, v := range rows {
		if v.Active {
			items = append(items, domain.VideoItem{URL: v.URL, Priority: v.Priority})
		}
	}
	return items, nil
}

// ListVideos returns every stored clip in insertion order
func (s *Store) ListVideos(ctx context.Context) ([]Video, error) {
	var rows []Video
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("url ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	return rows, nil
}

// AddVideoByURL appends an external clip to the rotation
func (s *Store) AddVideoByURL(ctx context.Context, rawURL string, priority int) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return fmt.Errorf("failed to add video: %w", ErrInvalidInput)
	}

	v := Video{URL: rawURL, Active: true, Priority: priority}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return fmt.Errorf("failed to add video %s: %w", rawURL, err)
	}

	s.logger.Info("Video added", zap.String("url", rawURL), zap.Int("priority", priority))
	s.notify()
	return nil
}

// UploadVideo stores a clip under the media directory and appends it to the rotation.
// It returns the public URL of the stored file.
func (s *Store) UploadVideo(ctx context.Context, filename string, r io.Reader, priority int) (string, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("failed to upload video: %w", ErrInvalidInput)
	}

	dir := s.cfg.GetMediaDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := fmt.Sprintf("admin_%d_%s", s.clock.Now().UnixMilli(), base)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	written, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(path)
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", fmt.Errorf("failed to write media file: %w", copyErr)
	}

	publicURL := s.cfg.GetMediaBaseURL() + "/" + url.PathEscape(name)
	v := Video{URL: publicURL, Active: true, Priority: priority}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to record uploaded video: %w", err)
	}

	s.logger.Info("Video uploaded",
		zap.String("file", path),
		zap.Int64("bytes", written),
		zap.String("url", publicURL))
	s.notify()

	return publicURL, nil
}

// DeleteVideo removes a clip by URL; uploaded files are removed from disk too
func (s *Store) DeleteVideo(ctx context.Context, rawURL string) error {
	res := s.db.WithContext(ctx).Where("url = ?", rawURL).Delete(&Video{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete video: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete video %s: %w", rawURL, ErrNotFound)
	}

	s.removeMediaFile(rawURL)
	s.logger.Info("Video deleted", zap.String("url", rawURL))
	s.notify()
	return nil
}

// DeleteAllVideos empties the rotation and returns how many clips were removed
func (s *Store) DeleteAllVideos(ctx context.Context) (int64, error) {
	rows, err := s.ListVideos(ctx)
	if err != nil {
		return 0, err
	}

	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&Video{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete videos: %w", res.Error)
	}

	for _, v := range rows {
		s.removeMediaFile(v.URL)
	}

	s.logger.Info("All videos deleted", zap.Int64("count", res.RowsAffected))
	s.notify()
	return res.RowsAffected, nil
}

// removeMediaFile deletes the local copy of a clip served from the media directory
func (s *Store) removeMediaFile(rawURL string) {
	prefix := s.cfg.GetMediaBaseURL() + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return
	}

	name, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || name != filepath.Base(name) {
		return
	}

	path := filepath.Join(s.cfg.GetMediaDir(), name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove media file", zap.String("file", path), zap.Error(err))
	}
}
