package monitor

import (
	"github.com/genricoloni/ledboard/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// Native LED panel size, used when nothing else is known
const (
	fallbackWidth  = 1536
	fallbackHeight = 3456
)

// PowerConfig enables display power control
type PowerConfig interface {
	PowerControlEnabled() bool
}

// ScreenConfig optionally pins the output resolution
type ScreenConfig interface {
	GetScreenOverride() (int, int)
}

// NewScreenResolution returns the configured size or detects the primary screen at startup
func NewScreenResolution(logger *zap.Logger, cfg ScreenConfig) *domain.ScreenResolution {
	if w, h := cfg.GetScreenOverride(); w > 0 && h > 0 {
		logger.Info("Screen resolution configured", zap.Int("width", w), zap.Int("height", h))
		return &domain.ScreenResolution{Width: w, Height: h}
	}

	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, falling back to the LED canvas size",
			zap.Int("width", fallbackWidth),
			zap.Int("height", fallbackHeight))
		return &domain.ScreenResolution{Width: fallbackWidth, Height: fallbackHeight}
	}

	// Use primary monitor (index 0)
	bounds := screenshot.GetDisplayBounds(0)
	res := &domain.ScreenResolution{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	logger.Info("Screen resolution detected",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))

	return res
}
