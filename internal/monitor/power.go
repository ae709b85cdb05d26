//go:build linux
// +build linux

package monitor

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	screenSaverDest   = "org.freedesktop.ScreenSaver"
	screenSaverPath   = "/org/freedesktop/ScreenSaver"
	screenSaverIface  = "org.freedesktop.ScreenSaver"
	displayConfigDest = "org.gnome.Mutter.DisplayConfig"
	displayConfigPath = "/org/gnome/Mutter/DisplayConfig"
	powerSaveModeProp = "org.gnome.Mutter.DisplayConfig.PowerSaveMode"

	powerSaveOn  int32 = 0
	powerSaveOff int32 = 3

	inhibitApp    = "ledboard"
	inhibitReason = "Signage playback"
)

// DisplayPower switches the panel on and off over the session bus.
// Without a bus it only tracks the requested state; the blank frame covers the panel.
type DisplayPower struct {
	logger  *zap.Logger
	enabled bool
	connect func() (DBusClient, error)

	mu        sync.Mutex
	conn      DBusClient
	state     *bool
	cookie    uint32
	inhibited bool
}

// NewDisplayPower creates a power controller
func NewDisplayPower(logger *zap.Logger, cfg PowerConfig) *DisplayPower {
	return &DisplayPower{
		logger:  logger,
		enabled: cfg.PowerControlEnabled(),
		connect: func() (DBusClient, error) { return NewStdDBusClient() },
	}
}

// Start connects to the session bus; failing to connect disables power control
func (p *DisplayPower) Start(ctx context.Context) error {
	if !p.enabled {
		p.logger.Info("Display power control disabled")
		return nil
	}

	conn, err := p.connect()
	if err != nil {
		p.logger.Warn("Session bus unavailable, display power control disabled", zap.Error(err))
		return nil
	}

	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()

	p.logger.Info("Display power control connected")
	return nil
}

// SetPower turns the panel on or off; repeated calls with the same value are no-ops
func (p *DisplayPower) SetPower(ctx context.Context, on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != nil && *p.state == on {
		return nil
	}
	p.state = &on

	if p.conn == nil {
		return nil
	}

	var err error
	if on {
		err = multierr.Append(
			p.conn.SetProperty(displayConfigDest, displayConfigPath, powerSaveModeProp, powerSaveOn),
			p.inhibit(),
		)
	} else {
		err = multierr.Append(
			p.uninhibit(),
			p.conn.SetProperty(displayConfigDest, displayConfigPath, powerSaveModeProp, powerSaveOff),
		)
	}

	if err != nil {
		return fmt.Errorf("failed to switch display power: %w", err)
	}

	p.logger.Info("Display power switched", zap.Bool("on", on))
	return nil
}

// Stop releases the inhibit cookie and closes the bus connection
func (p *DisplayPower) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}

	err := multierr.Append(p.uninhibit(), p.conn.Close())
	p.conn = nil
	return err
}

func (p *DisplayPower) inhibit() error {
	if p.inhibited {
		return nil
	}

	body, err := p.conn.Call(screenSaverDest, screenSaverPath, screenSaverIface+".Inhibit", inhibitApp, inhibitReason)
	if err != nil {
		return fmt.Errorf("inhibit screensaver: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("inhibit screensaver: empty reply")
	}
	cookie, ok := body[0].(uint32)
	if !ok {
		return fmt.Errorf("inhibit screensaver: unexpected cookie type %T", body[0])
	}

	p.cookie = cookie
	p.inhibited = true
	return nil
}

func (p *DisplayPower) uninhibit() error {
	if !p.inhibited {
		return nil
	}

	if _, err := p.conn.Call(screenSaverDest, screenSaverPath, screenSaverIface+".UnInhibit", p.cookie); err != nil {
		return fmt.Errorf("release screensaver inhibit: %w", err)
	}
	p.inhibited = false
	return nil
}
