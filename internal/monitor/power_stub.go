//go:build !linux
// +build !linux

package monitor

import (
	"context"

	"go.uber.org/zap"
)

// DisplayPower stub for non-Linux platforms
type DisplayPower struct {
	logger *zap.Logger
}

// NewDisplayPower creates a stub controller; the blank frame is the only way to darken the panel
func NewDisplayPower(logger *zap.Logger, cfg PowerConfig) *DisplayPower {
	return &DisplayPower{logger: logger}
}

// Start logs that power control is unavailable
func (p *DisplayPower) Start(ctx context.Context) error {
	if p.logger != nil {
		p.logger.Info("Display power control is only supported on Linux systems")
	}
	return nil
}

// SetPower is a no-op on non-Linux platforms
func (p *DisplayPower) SetPower(ctx context.Context, on bool) error {
	return nil
}

// Stop is a no-op on non-Linux platforms
func (p *DisplayPower) Stop(ctx context.Context) error {
	return nil
}
