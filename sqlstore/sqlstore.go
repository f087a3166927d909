// Package sqlstore persists the movie catalog in PostgreSQL or SQLite
// through gorm.
package sqlstore

import (
	"embed"
	"fmt"
	"strconv"
	"strings"

	"nettileffa/pkg/config"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations
var migrationFS embed.FS

type Options struct {
	Driver   string
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
	// Path is the SQLite database file. ":memory:" is accepted.
	Path string
	// Debug logs every statement.
	Debug bool
}

// FromConfig builds connection options from the DB_* settings.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Driver:   cfg.DB.Driver,
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
		Path:     cfg.DB.Path,
		Debug:    cfg.DB.Debug,
	}
}

// NewConnection opens a gorm connection for opts.Driver. PostgreSQL goes
// through lib/pq so that driver errors surface as *pq.Error.
func NewConnection(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if opts.Debug {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	switch normalizeDriver(opts.Driver) {
	case DriverPostgres:
		sslmode := "disable"
		if opts.SSLMode {
			sslmode = "require"
		}

		datasource := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
		)

		return gorm.Open(postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        datasource,
		}), cfg)

	case DriverSQLite:
		path := opts.Path
		if path == "" {
			path = "nettileffa.db"
		}

		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}

		db, err := gorm.Open(sqlite.New(sqlite.Config{
			DriverName: sqliteDriverName,
			DSN:        path + sep + "_foreign_keys=on&_busy_timeout=5000",
		}), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer; one connection also keeps ":memory:"
		// databases alive and shared.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
}

// Migrate applies every pending migration for the driver's dialect and
// returns how many were applied.
func Migrate(db *gorm.DB, driverName string) (int, error) {
	return exec(db, driverName, migrate.Up)
}

// Rollback reverts every applied migration.
func Rollback(db *gorm.DB, driverName string) (int, error) {
	return exec(db, driverName, migrate.Down)
}

func exec(db *gorm.DB, driverName string, dir migrate.MigrationDirection) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}

	source, dialect, err := Migrations(driverName)
	if err != nil {
		return 0, err
	}

	return migrate.Exec(sqlDB, dialect, source, dir)
}

// Migrations returns the embedded migration source and the sql-migrate
// dialect name for a driver.
func Migrations(driverName string) (migrate.MigrationSource, string, error) {
	switch normalizeDriver(driverName) {
	case DriverPostgres:
		return &migrate.EmbedFileSystemMigrationSource{
			FileSystem: migrationFS,
			Root:       "migrations/postgres",
		}, "postgres", nil
	case DriverSQLite:
		return &migrate.EmbedFileSystemMigrationSource{
			FileSystem: migrationFS,
			Root:       "migrations/sqlite",
		}, "sqlite3", nil
	}
	return nil, "", fmt.Errorf("unsupported database driver %q", driverName)
}

func normalizeDriver(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "postgresql":
		return DriverPostgres
	case "sqlite3":
		return DriverSQLite
	}
	return name
}
