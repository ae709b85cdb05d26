package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Employee represents the employees table
type Employee struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"not null;index" json:"name"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	BirthDate  string    `gorm:"size:10;index" json:"birth_date"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
}

// Video represents the videos table
type Video struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	URL       string    `gorm:"uniqueIndex;not null" json:"url"`
	Active    bool      `json:"active"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a random identifier
func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a random identifier
func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// DBConfig selects the database backend
type DBConfig interface {
	// GetDatabaseURL returns a PostgreSQL DSN; empty selects SQLite
	GetDatabaseURL() string
	GetDatabasePath() string
}

// OpenDB connects to PostgreSQL when a DSN is configured, otherwise to a SQLite file,
// and migrates the schema
func OpenDB(logger *zap.Logger, cfg DBConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)

	if dsn := cfg.GetDatabaseURL(); dsn != "" {
		logger.Info("Connecting to PostgreSQL")
		gormCfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormCfg)
	} else {
		logger.Info("Opening SQLite database", zap.String("path", cfg.GetDatabasePath()))
		db, err = gorm.Open(sqlite.Open(cfg.GetDatabasePath()), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&Employee{}, &Video{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
