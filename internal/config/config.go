package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	envPrefix = "LEDBOARD_"

	defaultOutputDir       = "/tmp/ledboard"
	defaultDatabasePath    = "ledboard.db"
	defaultMediaDir        = "media"
	defaultMediaBaseURL    = "http://127.0.0.1:8080/media"
	defaultCacheDir        = "/tmp/ledboard/cache"
	defaultListenAddr      = ":8080"
	defaultAdminUser       = "admin"
	defaultPlayerCommand   = "mpv --fs --mute=yes --no-terminal --really-quiet"
	defaultTickInterval    = 30 * time.Second
	defaultRefreshInterval = 5 * time.Minute
	maxTickInterval        = time.Minute

	// VideoSourceLocal plays the bundled clip list
	VideoSourceLocal = "local"
	// VideoSourceStore plays the clips managed through the admin API
	VideoSourceStore = "store"

	// PresenterAuto detects a wallpaper setter on the host
	PresenterAuto = "auto"
	// PresenterFile only writes frames to the output directory
	PresenterFile = "file"
)

// defaultLocalVideos is the clip set bundled with the panel
var defaultLocalVideos = []string{
	"videos/video1.mp4",
	"videos/video2.mp4",
	"videos/video3.mp4",
}

// AppConfig holds application configuration
type AppConfig struct {
	logger          *zap.Logger
	outputDir       string
	databaseURL     string
	databasePath    string
	mediaDir        string
	mediaBaseURL    string
	videoSource     string
	localVideos     []string
	playerCommand   []string
	cacheDir        string
	listenAddr      string
	adminUser       string
	adminPassword   string
	jwtSecret       string
	tickInterval    time.Duration
	refreshInterval time.Duration
	location        *time.Location
	logoPath        string
	screenWidth     int
	screenHeight    int
	presenter       string
	powerControl    bool
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	// A missing .env is the normal case on the panel host
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", zap.Error(err))
	}

	c := &AppConfig{
		logger:          logger,
		outputDir:       expandPath(getEnv("OUTPUT_DIR", defaultOutputDir)),
		databaseURL:     os.Getenv("DATABASE_URL"),
		databasePath:    expandPath(getEnv("DATABASE_PATH", defaultDatabasePath)),
		mediaDir:        expandPath(getEnv("MEDIA_DIR", defaultMediaDir)),
		mediaBaseURL:    strings.TrimRight(getEnv("MEDIA_BASE_URL", defaultMediaBaseURL), "/"),
		videoSource:     getEnv("VIDEO_SOURCE", VideoSourceLocal),
		localVideos:     splitList(getEnv("LOCAL_VIDEOS", strings.Join(defaultLocalVideos, ","))),
		playerCommand:   strings.Fields(getEnv("PLAYER_COMMAND", defaultPlayerCommand)),
		cacheDir:        expandPath(getEnv("CACHE_DIR", defaultCacheDir)),
		listenAddr:      getEnv("LISTEN_ADDR", defaultListenAddr),
		adminUser:       getEnv("ADMIN_USER", defaultAdminUser),
		adminPassword:   os.Getenv(envPrefix + "ADMIN_PASSWORD"),
		jwtSecret:       os.Getenv(envPrefix + "JWT_SECRET"),
		tickInterval:    getDuration(logger, "TICK_INTERVAL", defaultTickInterval),
		refreshInterval: getDuration(logger, "REFRESH_INTERVAL", defaultRefreshInterval),
		location:        getLocation(logger, os.Getenv(envPrefix+"TIMEZONE")),
		logoPath:        expandPath(os.Getenv(envPrefix + "LOGO_PATH")),
		screenWidth:     getInt(logger, "SCREEN_WIDTH"),
		screenHeight:    getInt(logger, "SCREEN_HEIGHT"),
		presenter:       getEnv("PRESENTER", PresenterAuto),
		powerControl:    getEnv("POWER_CONTROL", "true") != "false",
	}

	if c.videoSource != VideoSourceLocal && c.videoSource != VideoSourceStore {
		logger.Warn("Unknown video source, using bundled clips", zap.String("videoSource", c.videoSource))
		c.videoSource = VideoSourceLocal
	}

	// The window predicates need minute resolution
	if c.tickInterval > maxTickInterval {
		logger.Warn("Tick interval too long, clamping to one minute", zap.Duration("tickInterval", c.tickInterval))
		c.tickInterval = maxTickInterval
	}

	if len(c.playerCommand) == 0 {
		c.playerCommand = strings.Fields(defaultPlayerCommand)
	}

	logger.Info("Configuration loaded",
		zap.String("outputDir", c.outputDir),
		zap.Bool("postgres", c.databaseURL != ""),
		zap.String("databasePath", c.databasePath),
		zap.String("videoSource", c.videoSource),
		zap.Int("localVideos", len(c.localVideos)),
		zap.String("listenAddr", c.listenAddr),
		zap.Duration("tickInterval", c.tickInterval),
		zap.Duration("refreshInterval", c.refreshInterval),
		zap.String("timezone", c.location.String()),
		zap.String("presenter", c.presenter))

	return c
}

// GetOutputDir returns the directory for generated frames
func (c *AppConfig) GetOutputDir() string {
	return c.outputDir
}

// GetLogoPath returns the optional watermark image path
func (c *AppConfig) GetLogoPath() string {
	return c.logoPath
}

// GetDatabaseURL returns the PostgreSQL DSN, empty when SQLite is used
func (c *AppConfig) GetDatabaseURL() string {
	return c.databaseURL
}

// GetDatabasePath returns the SQLite file path
func (c *AppConfig) GetDatabasePath() string {
	return c.databasePath
}

// GetMediaDir returns where uploaded clips are stored
func (c *AppConfig) GetMediaDir() string {
	return c.mediaDir
}

// GetMediaBaseURL returns the public prefix of uploaded clips
func (c *AppConfig) GetMediaBaseURL() string {
	return c.mediaBaseURL
}

// GetVideoSource returns VideoSourceLocal or VideoSourceStore
func (c *AppConfig) GetVideoSource() string {
	return c.videoSource
}

// GetLocalVideos returns the bundled clip list
func (c *AppConfig) GetLocalVideos() []string {
	return append([]string(nil), c.localVideos...)
}

// GetPlayerCommand returns the player binary followed by its arguments
func (c *AppConfig) GetPlayerCommand() []string {
	return append([]string(nil), c.playerCommand...)
}

// GetCacheDir returns where remote clips are downloaded
func (c *AppConfig) GetCacheDir() string {
	return c.cacheDir
}

// GetListenAddr returns the admin API listen address
func (c *AppConfig) GetListenAddr() string {
	return c.listenAddr
}

// GetAdminUser returns the admin login name
func (c *AppConfig) GetAdminUser() string {
	return c.adminUser
}

// GetAdminPassword returns the admin password, empty disables login
func (c *AppConfig) GetAdminPassword() string {
	return c.adminPassword
}

// GetJWTSecret returns the token signing secret
func (c *AppConfig) GetJWTSecret() string {
	return c.jwtSecret
}

// GetTickInterval returns the clock tick period
func (c *AppConfig) GetTickInterval() time.Duration {
	return c.tickInterval
}

// GetRefreshInterval returns the data refresh period
func (c *AppConfig) GetRefreshInterval() time.Duration {
	return c.refreshInterval
}

// GetLocation returns the wall-clock time zone of the panel
func (c *AppConfig) GetLocation() *time.Location {
	return c.location
}

// GetScreenOverride returns the configured screen size; zero values mean autodetect
func (c *AppConfig) GetScreenOverride() (int, int) {
	return c.screenWidth, c.screenHeight
}

// GetPresenter returns PresenterAuto or PresenterFile
func (c *AppConfig) GetPresenter() string {
	return c.presenter
}

// PowerControlEnabled reports whether the panel power is driven over D-Bus
func (c *AppConfig) PowerControlEnabled() bool {
	return c.powerControl
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(logger *zap.Logger, key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(envPrefix + key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn("Invalid duration, using default",
			zap.String("key", envPrefix+key),
			zap.String("value", raw),
			zap.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}

func getInt(logger *zap.Logger, key string) int {
	raw := os.Getenv(envPrefix + key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.Warn("Invalid integer, ignoring", zap.String("key", envPrefix+key), zap.String("value", raw))
		return 0
	}
	return n
}

func getLocation(logger *zap.Logger, name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Unknown timezone, using local time", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}
