package datasources

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/config"
	"ledger-chain.backend/internal/infrastructure/datasources/sqlite"
)

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite, SQLitePath: sqlite.MemoryDSN(t.Name())})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestOpen_PostgresIsDefault(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	var got config.DatabaseConfig
	openPostgres = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		got = cfg
		return nil, errors.New("refused")
	}

	_, err := Open(config.DatabaseConfig{DBName: "ledger"})
	require.EqualError(t, err, "refused")
	require.Equal(t, "ledger", got.DBName)

	_, err = Open(config.DatabaseConfig{Driver: DriverPostgres})
	require.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql"})
	require.ErrorContains(t, err, `unsupported database driver "mysql"`)
}
