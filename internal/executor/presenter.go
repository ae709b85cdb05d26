package executor

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// PresenterConfig selects how frames are shown
type PresenterConfig interface {
	GetPresenter() string
}

// FilePresenter leaves frames on disk for an external viewer
type FilePresenter struct {
	logger *zap.Logger
}

// NewFilePresenter creates a presenter that only checks the frame exists
func NewFilePresenter(logger *zap.Logger) *FilePresenter {
	return &FilePresenter{logger: logger}
}

// Present verifies the frame was written
func (p *FilePresenter) Present(_ context.Context, imagePath string) error {
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("frame not available: %w", err)
	}
	p.logger.Debug("Frame ready", zap.String("path", imagePath))
	return nil
}
