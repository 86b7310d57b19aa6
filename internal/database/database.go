package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/careerpath/internal/config"
	"github.com/mrlokans/careerpath/internal/entities"
)

// Models lists every persisted entity in foreign-key order.
var Models = []any{
	&entities.User{},
	&entities.Career{},
	&entities.Course{},
	&entities.Rating{},
	&entities.Enrollment{},
	&entities.Recommendation{},
	&entities.AuditEvent{},
}

type Database struct {
	DB *gorm.DB
}

// SQLiteDSN enables foreign key enforcement, which SQLite leaves off per connection.
// WAL lets readers run alongside the single writer, and _txlock=immediate takes
// the write lock at BEGIN so concurrent transactions wait on the busy timeout
// instead of failing with "database is locked" when a read upgrades to a write.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000&_journal=WAL&_txlock=immediate", path)
}

// NewDatabase connects using the configured driver and migrates the schema.
func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(SQLiteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := Open(dialector, logger.Warn)
	if err != nil {
		return nil, err
	}

	log.Printf("Database initialized successfully (%s)", cfg.Driver)
	return db, nil
}

// Open connects through the given dialector and runs auto-migration.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // lookups of missing rows are normal 404s
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.AutoMigrate(); err != nil {
		return nil, err
	}
	return database, nil
}

func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MapError converts gorm errors into the shared entity error kinds.
// Errors without a domain meaning are returned unchanged.
func MapError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, entities.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s already exists: %w", what, entities.ErrConflict)
	default:
		return err
	}
}
