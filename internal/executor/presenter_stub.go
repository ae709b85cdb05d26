//go:build !linux
// +build !linux

package executor

import (
	"github.com/genricoloni/ledboard/internal/config"
	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// NewPresenter falls back to writing frames to disk on platforms without a known setter
func NewPresenter(logger *zap.Logger, cfg PresenterConfig) domain.Presenter {
	if cfg.GetPresenter() != config.PresenterFile {
		logger.Warn("Background setting is not implemented for this platform, frames are written to disk only")
	}
	return NewFilePresenter(logger)
}
