package repositories

import (
	"context"

	"github.com/google/uuid"
	"ledger-chain.backend/internal/domain/entities"
)

// LedgerRepository persists ledger blocks. Blocks are never updated.
type LedgerRepository interface {
	// LockHead serializes appenders for the rest of the current transaction
	LockHead(ctx context.Context) error
	// GetLast returns the highest-index block or ErrNotFound on an empty chain
	GetLast(ctx context.Context) (*entities.LedgerBlock, error)
	Create(ctx context.Context, block *entities.LedgerBlock) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.LedgerBlock, error)
	GetByIndex(ctx context.Context, index int64) (*entities.LedgerBlock, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.LedgerBlock, error)
	// ListFrom returns up to limit blocks with index >= fromIndex, ascending
	ListFrom(ctx context.Context, fromIndex int64, limit int) ([]*entities.LedgerBlock, error)
	// List returns blocks newest first
	List(ctx context.Context, limit, offset int) ([]*entities.LedgerBlock, int64, error)
	Count(ctx context.Context) (int64, error)
}
