package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reelcult/cultfilm-backend/model"
)

// GetDBConnection connects to the postgres instance described by the DB_*
// environment variables. Construct the handle once in main and inject it
// into the handler set; never look it up through package state.
func GetDBConnection() (*gorm.DB, error) {
	sslmode := "require"
	if os.Getenv("CULTFILM_ENV") == "dev" {
		sslmode = "prefer"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		sslmode,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// DatabaseSetupAndMigration migrates all tables. Idempotent, safe to run on
// every process start.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Notification{},
		&model.Movie{},
		&model.Genre{},
		&model.Platform{},
		&model.Review{},
		&model.ReviewLike{},
		&model.MovieList{},
		&model.MovieListItem{},
	)
}

// CreateTempDB creates a fully migrated throwaway database for one test.
// The returned name identifies the database for debugging.
func CreateTempDB(t *testing.T) (*gorm.DB, string) {
	name := fmt.Sprintf("test_db_%s", uuid.New().String())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("fail to create temp db: %s", err)
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("fail to migrate temp db: %s", err)
	}
	return db, name
}
