package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nettileffa/sqlstore"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// CreateSQLiteConnection opens a migrated SQLite database in a temp dir.
func CreateSQLiteConnection(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := sqlstore.NewConnection(sqlstore.Options{
		Driver: sqlstore.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)

	_, err = sqlstore.Migrate(db, sqlstore.DriverSQLite)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// CreatePostgresConnection starts a throwaway PostgreSQL container and
// returns a migrated connection to it.
func CreatePostgresConnection(t testing.TB, dbName, dbUser, dbPass string) *gorm.DB {
	t.Helper()

	cont := SetupPostgresContainer(t, dbName, dbUser, dbPass)
	host, err := cont.Host(context.Background())
	require.NoError(t, err)
	port, err := cont.MappedPort(context.Background(), "5432")
	require.NoError(t, err)

	db, err := sqlstore.NewConnection(sqlstore.Options{
		Driver:   sqlstore.DriverPostgres,
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err)

	_, err = sqlstore.Migrate(db, sqlstore.DriverPostgres)
	require.NoError(t, err)

	return db
}

func SetupPostgresContainer(t testing.TB, dbname, user, password string) testcontainers.Container {
	ctx := context.Background()
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbname),
		pgcontainer.WithUsername(user),
		pgcontainer.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, postgre.Terminate(ctx))
	})

	return postgre
}
