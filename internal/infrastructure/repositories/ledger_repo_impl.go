package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/infrastructure/models"
)

// ledgerLockKey is the postgres advisory lock id guarding block index assignment
const ledgerLockKey int64 = 0x1ed9e7

// LedgerRepository implements ledger block persistence
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// LockHead takes a transaction-scoped advisory lock on postgres. Other
// dialects rely on the unique block index and their own write serialization.
func (r *LedgerRepository) LockHead(ctx context.Context) error {
	db := GetDB(ctx, r.db).WithContext(ctx)
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec("SELECT pg_advisory_xact_lock(?)", ledgerLockKey).Error
}

func (r *LedgerRepository) GetLast(ctx context.Context) (*entities.LedgerBlock, error) {
	var m models.LedgerBlock
	err := GetDB(ctx, r.db).WithContext(ctx).Order("block_index DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return blockToEntity(&m), nil
}

func (r *LedgerRepository) Create(ctx context.Context, block *entities.LedgerBlock) error {
	m := &models.LedgerBlock{
		ID:           block.ID,
		BlockIndex:   block.Index,
		PreviousHash: block.PreviousHash,
		Hash:         block.Hash,
		Payload:      string(block.Payload),
		BlockType:    string(block.BlockType),
		Signature:    block.Signature,
		TimestampMs:  block.Timestamp.UnixMilli(),
		Status:       block.Status,
		CreatedAt:    time.Now().UTC(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	block.CreatedAt = m.CreatedAt
	return nil
}

func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LedgerBlock, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *LedgerRepository) GetByIndex(ctx context.Context, index int64) (*entities.LedgerBlock, error) {
	return r.findOne(ctx, "block_index = ?", index)
}

func (r *LedgerRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.LedgerBlock, error) {
	var m models.LedgerBlock
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return blockToEntity(&m), nil
}

func (r *LedgerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.LedgerBlock, error) {
	out := make(map[uuid.UUID]*entities.LedgerBlock, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.LedgerBlock
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = blockToEntity(&rows[i])
	}
	return out, nil
}

func (r *LedgerRepository) ListFrom(ctx context.Context, fromIndex int64, limit int) ([]*entities.LedgerBlock, error) {
	var rows []models.LedgerBlock
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("block_index >= ?", fromIndex).
		Order("block_index ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entities.LedgerBlock, 0, len(rows))
	for i := range rows {
		out = append(out, blockToEntity(&rows[i]))
	}
	return out, nil
}

func (r *LedgerRepository) List(ctx context.Context, limit, offset int) ([]*entities.LedgerBlock, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var rows []models.LedgerBlock
	q := GetDB(ctx, r.db).WithContext(ctx).Order("block_index DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*entities.LedgerBlock, 0, len(rows))
	for i := range rows {
		out = append(out, blockToEntity(&rows[i]))
	}
	return out, total, nil
}

func (r *LedgerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.LedgerBlock{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
