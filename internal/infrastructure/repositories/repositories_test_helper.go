package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/infrastructure/datasources/sqlite"
	"ledger-chain.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("%s_%d", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := sqlite.NewGormDB(sqlite.MemoryDSN(name), 1)
	require.NoError(t, err, "open sqlite")
	return db
}

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, models.MigrateLedger(db))
	require.NoError(t, models.MigrateBooking(db))
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, first, last, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&models.User{ID: id, FirstName: first, LastName: last, Email: strings.ToLower(first) + "@mail.test", Role: role}).Error)
	return id
}
