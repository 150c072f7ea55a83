package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/mistermo/internal/models"
)

// OpenSQLite opens the embedded database at path and creates the schema
// idempotently. The pool is limited to one connection so SQLite keeps its
// single-writer semantics.
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.DailyProgress{},
		&models.OnboardingSubmission{},
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return gdb, nil
}

// NewSQLiteStore wires the GORM repositories around an open database.
func NewSQLiteStore(gdb *gorm.DB) *Store {
	return &Store{
		Users:      NewGormUserRepository(gdb),
		Progress:   NewGormProgressRepository(gdb),
		Onboarding: NewGormOnboardingRepository(gdb),
		closer: func() error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
