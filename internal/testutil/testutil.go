// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/champa-store/internal/db"
)

// TestDB opens a migrated in-memory SQLite database that is closed when the
// test ends.
func TestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := dbpkg.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SilentLogger discards everything.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
