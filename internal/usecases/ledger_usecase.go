package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/logger"
	"ledger-chain.backend/pkg/utils"
)

// BlockSigner signs block hashes. A nil signer stores blocks unsigned.
type BlockSigner interface {
	Sign(hash string) (string, error)
	Verify(hash, signature string) bool
	Address() string
}

// LedgerUsecase appends to and verifies the hash chain
type LedgerUsecase struct {
	ledgerRepo repositories.LedgerRepository
	uow        repositories.UnitOfWork
	signer     BlockSigner
	now        func() time.Time
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(ledgerRepo repositories.LedgerRepository, uow repositories.UnitOfWork, signer BlockSigner) *LedgerUsecase {
	return &LedgerUsecase{
		ledgerRepo: ledgerRepo,
		uow:        uow,
		signer:     signer,
		now:        time.Now,
	}
}

// AppendBlock links a new block to the current head. When ctx carries a
// transaction the block is written inside it and shares its fate.
func (u *LedgerUsecase) AppendBlock(ctx context.Context, payload interface{}, blockType entities.BlockType) (*entities.LedgerBlock, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode block payload: %w", err)
	}

	var block *entities.LedgerBlock
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ledgerRepo.LockHead(txCtx); err != nil {
			return fmt.Errorf("failed to lock ledger head: %w", err)
		}

		index := int64(0)
		previousHash := entities.GenesisPreviousHash
		last, err := u.ledgerRepo.GetLast(txCtx)
		switch {
		case err == nil:
			index = last.Index + 1
			previousHash = last.Hash
		case errors.Is(err, domainerrors.ErrNotFound):
		default:
			return fmt.Errorf("failed to read ledger head: %w", err)
		}

		block = &entities.LedgerBlock{
			ID:           utils.GenerateUUIDv7(),
			Index:        index,
			PreviousHash: previousHash,
			Payload:      raw,
			BlockType:    blockType,
			Timestamp:    u.now().UTC().Truncate(time.Millisecond),
			Status:       entities.BlockStatusConfirmed,
		}
		block.Hash = block.ComputeHash()
		u.sign(txCtx, block)

		if err := u.ledgerRepo.Create(txCtx, block); err != nil {
			return fmt.Errorf("failed to persist ledger block: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "Ledger block appended",
		zap.Int64("index", block.Index),
		zap.String("type", string(block.BlockType)),
		zap.String("hash", block.Hash),
	)
	return block, nil
}

func (u *LedgerUsecase) sign(ctx context.Context, block *entities.LedgerBlock) {
	if u.signer == nil {
		return
	}
	sig, err := u.signer.Sign(block.Hash)
	if err != nil {
		metrics.SigningFailures.Inc()
		logger.Warn(ctx, "Ledger block stored unsigned",
			zap.Int64("index", block.Index),
			zap.Error(fmt.Errorf("%w: %v", domainerrors.ErrSigning, err)),
		)
		return
	}
	block.Signature = null.StringFrom(sig)
}

// VerifyBlock recomputes the hash of a single block
func (u *LedgerUsecase) VerifyBlock(block *entities.LedgerBlock) bool {
	return block != nil && block.Verify()
}

// VerifyChainIntegrity walks the chain from genesis and stops at the first
// gap, broken link or hash mismatch.
func (u *LedgerUsecase) VerifyChainIntegrity(ctx context.Context) (*entities.IntegrityResult, error) {
	total, err := u.ledgerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledger blocks: %w", err)
	}

	expected := int64(0)
	previousHash := entities.GenesisPreviousHash
	for {
		blocks, err := u.ledgerRepo.ListFrom(ctx, expected, integrityBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger blocks: %w", err)
		}

		for _, b := range blocks {
			if b.Index != expected {
				return invalidChain(total, expected, fmt.Sprintf("missing block %d", expected)), nil
			}
			if b.PreviousHash != previousHash {
				return invalidChain(total, b.Index, "previous hash does not match prior block"), nil
			}
			if !b.Verify() {
				return invalidChain(total, b.Index, "hash does not match block contents"), nil
			}
			previousHash = b.Hash
			expected++
		}

		if len(blocks) < integrityBatchSize {
			break
		}
	}

	return &entities.IntegrityResult{Valid: true, BlockCount: total}, nil
}

func invalidChain(total, index int64, reason string) *entities.IntegrityResult {
	return &entities.IntegrityResult{
		Valid:             false,
		BlockCount:        total,
		InvalidBlockIndex: &index,
		Reason:            reason,
	}
}

// GetChainInfo summarizes the chain
func (u *LedgerUsecase) GetChainInfo(ctx context.Context) (*entities.ChainInfo, error) {
	integrity, err := u.VerifyChainIntegrity(ctx)
	if err != nil {
		return nil, err
	}

	info := &entities.ChainInfo{
		TotalBlocks: integrity.BlockCount,
		Integrity:   *integrity,
	}
	last, err := u.ledgerRepo.GetLast(ctx)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	info.LastBlock = last
	if u.signer != nil {
		info.SignerAddress = u.signer.Address()
	}
	return info, nil
}

// GetBlock returns the block at index with its verification state
func (u *LedgerUsecase) GetBlock(ctx context.Context, index int64) (*entities.BlockVerification, error) {
	if index < 0 {
		return nil, domainerrors.BadRequest("block index must not be negative")
	}
	block, err := u.ledgerRepo.GetByIndex(ctx, index)
	if err != nil {
		return nil, err
	}

	out := &entities.BlockVerification{Block: block, HashValid: block.Verify()}
	if u.signer != nil && block.Signature.Valid {
		ok := u.signer.Verify(block.Hash, block.Signature.String)
		out.SignatureValid = &ok
	}
	return out, nil
}

// ListBlocks returns a page of blocks, newest first
func (u *LedgerUsecase) ListBlocks(ctx context.Context, pagination utils.PaginationParams) ([]*entities.LedgerBlock, utils.PaginationMeta, error) {
	blocks, total, err := u.ledgerRepo.List(ctx, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return blocks, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}
