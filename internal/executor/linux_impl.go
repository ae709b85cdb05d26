//go:build linux
// +build linux

package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/genricoloni/ledboard/internal/config"
	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// DisplayCommand represents a detected background setter
type DisplayCommand struct {
	Name   string
	Binary string
	Args   []string // %s will be replaced with image path
}

var (
	// Ordered list of setters to try (highest priority first).
	// Each must return once the image is shown.
	displayCommands = []DisplayCommand{
		// Hyprland
		{Name: "swww", Binary: "swww", Args: []string{"img", "%s"}},
		{Name: "hyprpaper", Binary: "hyprctl", Args: []string{"hyprpaper", "wallpaper", ",%s"}},
		// GNOME kiosk session
		{Name: "gnome", Binary: "gsettings", Args: []string{"set", "org.gnome.desktop.background", "picture-uri", "file://%s"}},
		// Generic X11
		{Name: "feh", Binary: "feh", Args: []string{"--bg-max", "--image-bg", "black", "%s"}},
		{Name: "nitrogen", Binary: "nitrogen", Args: []string{"--set-zoom", "%s"}},
	}
)

// CommandPresenter shows frames by setting the desktop background of the panel host
type CommandPresenter struct {
	logger  *zap.Logger
	command DisplayCommand
}

// NewPresenter picks how frames reach the panel (Linux implementation)
func NewPresenter(logger *zap.Logger, cfg PresenterConfig) domain.Presenter {
	if cfg.GetPresenter() == config.PresenterFile {
		logger.Info("Frames are written to disk only")
		return NewFilePresenter(logger)
	}

	cmd := detectCommand(logger)
	if cmd.Binary == "" {
		logger.Warn("No supported background setter found, frames are written to disk only")
		return NewFilePresenter(logger)
	}

	logger.Info("Background setter detected",
		zap.String("name", cmd.Name),
		zap.String("binary", cmd.Binary))

	return &CommandPresenter{
		logger:  logger,
		command: cmd,
	}
}

// detectCommand analyzes the environment to choose the best setter
func detectCommand(logger *zap.Logger) DisplayCommand {
	desktop := os.Getenv("XDG_CURRENT_DESKTOP")
	session := os.Getenv("XDG_SESSION_TYPE")
	hyprland := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")

	logger.Debug("Detecting background setter",
		zap.String("desktop", desktop),
		zap.String("session", session),
		zap.String("hyprland", hyprland))

	if hyprland != "" {
		if cmd, ok := firstAvailable("swww", "hyprpaper"); ok {
			return cmd
		}
	}

	if strings.Contains(strings.ToLower(desktop), "gnome") {
		if cmd, ok := firstAvailable("gnome"); ok {
			return cmd
		}
	}

	if session == "x11" {
		if cmd, ok := firstAvailable("feh", "nitrogen"); ok {
			return cmd
		}
	}

	// Fallback: try all commands in order
	for _, cmd := range displayCommands {
		if commandExists(cmd.Binary) {
			logger.Info("Using fallback background setter", zap.String("name", cmd.Name))
			return cmd
		}
	}

	return DisplayCommand{}
}

func firstAvailable(names ...string) (DisplayCommand, bool) {
	for _, cmd := range displayCommands {
		for _, name := range names {
			if cmd.Name == name && commandExists(cmd.Binary) {
				return cmd, true
			}
		}
	}
	return DisplayCommand{}, false
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Present sets the panel background to the specified frame
func (p *CommandPresenter) Present(ctx context.Context, imagePath string) error {
	args := make([]string, len(p.command.Args))
	for i, arg := range p.command.Args {
		args[i] = strings.ReplaceAll(arg, "%s", imagePath)
	}

	p.logger.Debug("Presenting frame",
		zap.String("command", p.command.Binary),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, p.command.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to present frame with %s: %w (output: %s)",
			p.command.Name, err, string(output))
	}

	p.logger.Debug("Frame presented",
		zap.String("command", p.command.Name),
		zap.String("path", imagePath))

	return nil
}
