package datasources

import (
	"fmt"

	"gorm.io/gorm"

	"ledger-chain.backend/internal/config"
	"ledger-chain.backend/internal/infrastructure/datasources/postgres"
	"ledger-chain.backend/internal/infrastructure/datasources/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	openPostgres = postgres.NewGormDB
	openSQLite   = sqlite.NewGormDB
)

// Open connects to the database named by cfg.Driver
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return openPostgres(cfg)
	case DriverSQLite:
		return openSQLite(cfg.SQLitePath, 1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
