package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
	"github.com/genricoloni/ledboard/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store is the write and statistics surface the admin API manages
type Store interface {
	FetchRoster(ctx context.Context) ([]domain.Person, error)
	AddPerson(ctx context.Context, name, position string) (domain.Person, error)
	UpdatePerson(ctx context.Context, id, name, position string) error
	RemovePerson(ctx context.Context, id string) error

	ListVideos(ctx context.Context) ([]store.Video, error)
	AddVideoByURL(ctx context.Context, url string, priority int) error
	UploadVideo(ctx context.Context, filename string, r io.Reader, priority int) (string, error)
	DeleteVideo(ctx context.Context, url string) error
	DeleteAllVideos(ctx context.Context) (int64, error)

	TomorrowBirthdays(ctx context.Context) (int, error)
	WeekBirthdays(ctx context.Context) ([]domain.DayBirthdays, error)
}

// SnapshotProvider exposes the display state currently on the panel
type SnapshotProvider interface {
	Snapshot() domain.Snapshot
}

// Config provides the listen address and media directory
type Config interface {
	AuthConfig
	GetListenAddr() string
	GetMediaDir() string
}

// Server is the admin JSON API
type Server struct {
	logger *zap.Logger
	addr   string
	store  Store
	snaps  SnapshotProvider
	auth   *Authenticator
	router *gin.Engine

	srv      *http.Server
	listener net.Listener
}

// NewServer builds the router; nothing listens until Start
func NewServer(logger *zap.Logger, cfg Config, st Store, snaps SnapshotProvider) (*Server, error) {
	auth, err := NewAuthenticator(logger, cfg)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		logger: logger,
		addr:   cfg.GetListenAddr(),
		store:  st,
		snaps:  snaps,
		auth:   auth,
		router: gin.New(),
	}

	s.router.Use(gin.Recovery(), s.requestLogger())

	s.router.GET("/health", s.health)
	s.router.POST("/admin/login", s.login)
	// Clips uploaded through the API are fetched by the player from here
	s.router.Static("/media", cfg.GetMediaDir())

	api := s.router.Group("/api")
	api.Use(auth.Middleware())
	{
		api.GET("/state", s.state)

		api.GET("/roster", s.roster)
		api.POST("/people", s.addPerson)
		api.PUT("/people/:id", s.updatePerson)
		api.DELETE("/people/:id", s.removePerson)

		api.GET("/videos", s.listVideos)
		api.POST("/videos", s.addVideo)
		api.POST("/videos/upload", s.uploadVideo)
		api.DELETE("/videos", s.deleteVideo)
		api.DELETE("/videos/all", s.deleteAllVideos)

		api.GET("/stats/tomorrow", s.tomorrow)
		api.GET("/stats/week", s.week)
	}

	return s, nil
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Start binds the listen address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Admin server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("Admin API listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.logger.Info("Admin API shutting down")
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// fail maps store errors to HTTP statuses
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Admin request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
