//go:build integration

package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/linskybing/engagement-go/internal/config/db"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB returns a migrated PostgreSQL database. TEST_DB_DSN points
// it at an existing server; otherwise a throwaway container is started.
func NewPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("engagement"),
			tcpostgres.WithUsername("test"),
			tcpostgres.WithPassword("test"),
			tcpostgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("start postgres: %v", err)
		}
		t.Cleanup(func() { _ = testcontainers.TerminateContainer(pg) })

		dsn, err = pg.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("postgres dsn: %v", err)
		}
	}

	var (
		gdb *gorm.DB
		err error
	)
	for i := 0; i < 10; i++ {
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("postgres handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.Migrator().DropTable("messages", "audit_logs", "agreements", "invitations", "applications", "campaigns"); err != nil {
		t.Fatalf("reset schema: %v", err)
	}
	if err := db.MigrateEngagement(gdb); err != nil {
		t.Fatalf("migrate engagement: %v", err)
	}
	if err := db.MigrateMessaging(gdb); err != nil {
		t.Fatalf("migrate messaging: %v", err)
	}
	return gdb
}
