package sqlstore_test

import (
	"context"
	"testing"

	"nettileffa/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type Info struct {
	CurrentUser string `db:"current_user"`
}

func TestConnection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	dbName, dbUser, dbPass := "test1", "test1", "123456"
	db := CreatePostgresConnection(t, dbName, dbUser, dbPass)

	var info Info
	err := db.Raw("SELECT current_user").Scan(&info).Error
	assert.NoError(t, err)
	assert.Equal(t, dbUser, info.CurrentUser)
}

func TestNewConnection_Error(t *testing.T) {
	// Use invalid options to force a connection failure
	opts := sqlstore.Options{
		Driver:   sqlstore.DriverPostgres,
		DBName:   "nonexistent",
		DBUser:   "invaliduser",
		Password: "wrongpass",
		Host:     "invalidhost", // Non-existent host to ensure failure
		Port:     "5432",
		SSLMode:  true,
	}

	_, err := sqlstore.NewConnection(opts)
	assert.Error(t, err)
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := sqlstore.NewConnection(sqlstore.Options{Driver: "mysql"})
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestMigrations_DriverAliases(t *testing.T) {
	tests := []struct {
		driver  string
		dialect string
	}{
		{driver: "", dialect: "postgres"},
		{driver: "PostgreSQL", dialect: "postgres"},
		{driver: " sqlite ", dialect: "sqlite3"},
		{driver: "sqlite3", dialect: "sqlite3"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			source, dialect, err := sqlstore.Migrations(tt.driver)

			require.NoError(t, err)
			assert.NotNil(t, source)
			assert.Equal(t, tt.dialect, dialect)
		})
	}

	_, _, err := sqlstore.Migrations("mysql")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestMigrate_RollbackAndReapply(t *testing.T) {
	db := CreateSQLiteConnection(t)

	n, err := sqlstore.Rollback(db, sqlstore.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = sqlstore.Migrate(db, sqlstore.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMovieRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	db := CreatePostgresConnection(t, "catalog_test", "testuser", "testpass")
	repo := sqlstore.NewMovieRepository(db)

	testMovieRepository(t, func(t testing.TB) *gorm.DB {
		require.NoError(t, repo.Reset(context.Background()))
		return db
	})
}
