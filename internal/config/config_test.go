package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"OUTPUT_DIR", "DATABASE_PATH", "VIDEO_SOURCE", "LOCAL_VIDEOS", "PLAYER_COMMAND",
		"TICK_INTERVAL", "REFRESH_INTERVAL", "TIMEZONE", "PRESENTER", "POWER_CONTROL",
	} {
		t.Setenv(envPrefix+key, "")
	}
	t.Setenv("DATABASE_URL", "")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.GetOutputDir() != defaultOutputDir {
		t.Errorf("expected output dir %s, got %s", defaultOutputDir, cfg.GetOutputDir())
	}
	if cfg.GetVideoSource() != VideoSourceLocal {
		t.Errorf("expected local video source, got %s", cfg.GetVideoSource())
	}
	if got := len(cfg.GetLocalVideos()); got != 3 {
		t.Errorf("expected 3 bundled clips, got %d", got)
	}
	if cfg.GetTickInterval() != defaultTickInterval {
		t.Errorf("expected tick %v, got %v", defaultTickInterval, cfg.GetTickInterval())
	}
	if cfg.GetPlayerCommand()[0] != "mpv" {
		t.Errorf("expected mpv player, got %v", cfg.GetPlayerCommand())
	}
	if cfg.GetLocation() != time.Local {
		t.Errorf("expected local time zone, got %s", cfg.GetLocation())
	}
	if !cfg.PowerControlEnabled() {
		t.Error("power control should be enabled by default")
	}
}

func TestNewAppConfig_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(*testing.T, *AppConfig)
	}{
		{
			name: "Store Video Source",
			env:  map[string]string{"LEDBOARD_VIDEO_SOURCE": "store"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetVideoSource() != VideoSourceStore {
					t.Errorf("expected store, got %s", c.GetVideoSource())
				}
			},
		},
		{
			name: "Unknown Video Source Falls Back",
			env:  map[string]string{"LEDBOARD_VIDEO_SOURCE": "youtube"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetVideoSource() != VideoSourceLocal {
					t.Errorf("expected local fallback, got %s", c.GetVideoSource())
				}
			},
		},
		{
			name: "Tick Interval Clamped To A Minute",
			env:  map[string]string{"LEDBOARD_TICK_INTERVAL": "5m"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetTickInterval() != time.Minute {
					t.Errorf("expected 1m, got %v", c.GetTickInterval())
				}
			},
		},
		{
			name: "Invalid Duration Uses Default",
			env:  map[string]string{"LEDBOARD_REFRESH_INTERVAL": "soon"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetRefreshInterval() != defaultRefreshInterval {
					t.Errorf("expected default refresh, got %v", c.GetRefreshInterval())
				}
			},
		},
		{
			name: "Local Video List Trimmed",
			env:  map[string]string{"LEDBOARD_LOCAL_VIDEOS": " a.mp4, ,b.mp4 "},
			check: func(t *testing.T, c *AppConfig) {
				got := c.GetLocalVideos()
				if len(got) != 2 || got[0] != "a.mp4" || got[1] != "b.mp4" {
					t.Errorf("unexpected list %v", got)
				}
			},
		},
		{
			name: "Timezone",
			env:  map[string]string{"LEDBOARD_TIMEZONE": "Asia/Tashkent"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetLocation().String() != "Asia/Tashkent" {
					t.Errorf("expected Asia/Tashkent, got %s", c.GetLocation())
				}
			},
		},
		{
			name: "Screen Override",
			env:  map[string]string{"LEDBOARD_SCREEN_WIDTH": "768", "LEDBOARD_SCREEN_HEIGHT": "1728"},
			check: func(t *testing.T, c *AppConfig) {
				w, h := c.GetScreenOverride()
				if w != 768 || h != 1728 {
					t.Errorf("expected 768x1728, got %dx%d", w, h)
				}
			},
		},
		{
			name: "Media Base URL Without Trailing Slash",
			env:  map[string]string{"LEDBOARD_MEDIA_BASE_URL": "https://panel.local/media/"},
			check: func(t *testing.T, c *AppConfig) {
				if c.GetMediaBaseURL() != "https://panel.local/media" {
					t.Errorf("unexpected base url %s", c.GetMediaBaseURL())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, NewAppConfig(zap.NewNop()))
		})
	}
}
