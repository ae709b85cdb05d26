package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a write targets a record that does not exist
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput is returned for empty names, URLs or file names
	ErrInvalidInput = errors.New("invalid input")
)

const (
	pageSize        = 1000
	defaultPriority = 10
	// adminDepartment is assigned to people added by hand
	adminDepartment = "Boshqaruv"
)

// Config defines where clips come from
type Config interface {
	GetVideoSource() string
	GetLocalVideos() []string
	GetMediaDir() string
	GetMediaBaseURL() string
}

// Store is the gorm-backed data source of the panel.
// Writes notify subscribers after they commit.
type Store struct {
	logger *zap.Logger
	db     *gorm.DB
	cfg    Config
	clock  domain.Clock

	mu          sync.Mutex
	subscribers map[uint64]func()
	nextSub     uint64
}

// NewStore creates a store over an open database
func NewStore(logger *zap.Logger, db *gorm.DB, cfg Config, clock domain.Clock) *Store {
	return &Store{
		logger:      logger,
		db:          db,
		cfg:         cfg,
		clock:       clock,
		subscribers: make(map[uint64]func()),
	}
}

// Subscribe registers fn to run after every successful write
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close releases the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	return sqlDB.Close()
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
