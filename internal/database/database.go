package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"foodafford/internal/logger"
	"foodafford/internal/models"
)

const connectRetries = 5

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens the snapshot store. SQLite is the default and keeps the
// snapshot in memory; Postgres is used when a shared store is wanted.
func NewManager(config *Config) (*Manager, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	switch config.Driver {
	case DriverPostgres:
		db, err = openPostgres(config, gormCfg)
	case DriverSQLite, "":
		db, err = gorm.Open(sqlite.Open(config.SQLiteDSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", config.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// An in-memory database lives as long as its last connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	return &Manager{db: db, config: config}, nil
}

// openPostgres retries the first connection so the server can start
// alongside a database container that is still booting.
func openPostgres(config *Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	var db *gorm.DB
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectRetries)
	err := backoff.RetryNotify(
		func() error {
			var openErr error
			db, openErr = gorm.Open(postgres.New(postgres.Config{
				DSN:                  config.DSN(),
				PreferSimpleProtocol: true,
			}), gormCfg)
			return openErr
		},
		policy,
		func(err error, wait time.Duration) {
			logger.Get().Warnw("database not ready, retrying",
				"error", err,
				"wait", wait.String(),
			)
		},
	)
	return db, err
}

// Migrate brings the schema up to date. Postgres uses the SQL migrations;
// SQLite is migrated from the models.
func (m *Manager) Migrate() error {
	if m.config.Driver != DriverPostgres {
		logger.Get().Info("Auto-migrating SQLite snapshot store...")
		if err := m.db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	mig, closeFn, err := m.migrator()
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Get().Info("Running database migrations...")
	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// MigrateDown rolls back the given number of SQL migrations, or all of them
// when steps is not positive. Postgres only.
func (m *Manager) MigrateDown(steps int) error {
	mig, closeFn, err := m.migrator()
	if err != nil {
		return err
	}
	defer closeFn()

	if steps > 0 {
		err = mig.Steps(-steps)
	} else {
		err = mig.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// MigrationVersion reports the applied migration version. Postgres only.
func (m *Manager) MigrationVersion() (uint, bool, error) {
	mig, closeFn, err := m.migrator()
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Manager) migrator() (*migrate.Migrate, func(), error) {
	if m.config.Driver != DriverPostgres {
		return nil, nil, fmt.Errorf("SQL migrations require DB_DRIVER=postgres, got %q", m.config.Driver)
	}
	mig, err := migrate.New("file://"+m.config.MigrationsDir, m.config.MigrateURL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	closeFn := func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}
	return mig, closeFn, nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
