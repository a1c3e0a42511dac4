package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	dbpkg "github.com/yungbote/slotswapper-backend/internal/data/db"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a fresh, migrated in-memory SQLite database private to the test.
// A single connection is used; never query the returned handle while a
// transaction on it is open.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.AutoMigrateAll(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	if err := dbpkg.EnsureSchedulingIndexes(db); err != nil {
		tb.Fatalf("indexes: %v", err)
	}
	return db
}

// FileDB returns a migrated file-backed SQLite database allowing maxOpen
// connections, so concurrent transactions contend on the database itself.
func FileDB(tb testing.TB, maxOpen int) *gorm.DB {
	tb.Helper()
	svc, err := dbpkg.Open(dbpkg.Config{
		Driver:       dbpkg.DriverSQLite,
		SQLitePath:   filepath.Join(tb.TempDir(), "slots.db"),
		MaxOpenConns: maxOpen,
	}, Logger(tb))
	if err != nil {
		tb.Fatalf("open sqlite file: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })

	db := svc.DB()
	if err := dbpkg.AutoMigrateAll(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	if err := dbpkg.EnsureSchedulingIndexes(db); err != nil {
		tb.Fatalf("indexes: %v", err)
	}
	return db
}

// PostgresDB returns the shared Postgres database named by TEST_POSTGRES_DSN, or skips.
func PostgresDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	pgOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			return
		}
		pgDB, pgErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if pgErr != nil {
			return
		}
		if pgErr = dbpkg.AutoMigrateAll(pgDB); pgErr != nil {
			return
		}
		pgErr = dbpkg.EnsureSchedulingIndexes(pgDB)
	})
	if pgDB == nil && pgErr == nil {
		tb.Skip("set TEST_POSTGRES_DSN to run Postgres integration tests")
	}
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}
	return pgDB
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
