// Package database is the data-access layer. Every query method is
// scoped to the owning user where ownership applies, so row-level
// authorization is an explicit predicate here rather than policy in the
// store.
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"homeledger/server/internal/models"
)

// ErrNotFound is returned when a row does not exist or is not visible to
// the requesting user. Callers must not distinguish the two cases.
var ErrNotFound = errors.New("record not found")

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// NewTestDB opens an isolated in-memory database for tests.
func NewTestDB() (*Database, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// A single connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &Database{db: db, logger: logrus.New()}, nil
}

// GetDB exposes the underlying gorm handle for components that manage
// their own transactions (the activity batch processor).
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

// RunMigrations brings the schema up to date.
func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.House{},
		&models.Room{},
		&models.Appliance{},
		&models.Repair{},
		&models.Attachment{},
		&models.ExteriorFeature{},
		&models.ExteriorMaintenance{},
		&models.Activity{},
	)
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// asNotFound hides gorm's sentinel from callers.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
