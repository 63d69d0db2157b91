package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm handle used across the schedule, recorder and
// archive services.
type DB struct {
	*gorm.DB
}

// Options tunes the sqlite connection. Zero values fall back to
// defaults suited to one recorder writing while the API reads.
type Options struct {
	Verbose         bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (o *Options) withDefaults() {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 10
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 5
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = 30 * time.Minute
	}
}

// Initialize opens the sqlite database at dbPath, creating its
// directory if needed.
func Initialize(dbPath string, verbose bool) (*DB, error) {
	return Open(dbPath, Options{Verbose: verbose})
}

// Open opens the sqlite database with explicit connection options.
func Open(dbPath string, opts Options) (*DB, error) {
	opts.withDefaults()

	if dir := filepath.Dir(dbPath); dir != "" && dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	logLevel := logger.Error
	if opts.Verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// All schedule instants are stored and compared in UTC.
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dbPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying SQL database: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	return &DB{DB: db}, nil
}

// dsn adds the sqlite pragmas a long-running recorder needs: WAL so
// API reads don't block the capture loop's writes, and a busy timeout
// instead of immediate SQLITE_BUSY errors. In-memory databases (tests)
// are left untouched.
func dsn(dbPath string) string {
	if dbPath == ":memory:" || strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("getting underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working.
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("getting underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// AutoMigrate runs GORM auto migration for the provided models.
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Printf("Migrated %d model(s)", len(models))
	return nil
}
