package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/linskybing/engagement-go/internal/config/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewTestDB opens a private in-memory SQLite database with every table
// migrated. One connection is used so the database lives as long as the test.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:engagement_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.MigrateEngagement(gdb); err != nil {
		t.Fatalf("migrate engagement: %v", err)
	}
	if err := db.MigrateMessaging(gdb); err != nil {
		t.Fatalf("migrate messaging: %v", err)
	}
	return gdb
}
