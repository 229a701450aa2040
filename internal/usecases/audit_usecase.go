package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
)

// AuditUsecase builds read-only reports over committed transactions
type AuditUsecase struct {
	walletRepo repositories.WalletRepository
	txRepo     repositories.TransactionRepository
	ledgerRepo repositories.LedgerRepository
	now        func() time.Time
}

func NewAuditUsecase(
	walletRepo repositories.WalletRepository,
	txRepo repositories.TransactionRepository,
	ledgerRepo repositories.LedgerRepository,
) *AuditUsecase {
	return &AuditUsecase{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		ledgerRepo: ledgerRepo,
		now:        time.Now,
	}
}

// GenerateAuditReport lists every transaction touching walletID in
// [start, end] with its direction and ledger anchor. Only completed
// transactions count toward the totals.
func (u *AuditUsecase) GenerateAuditReport(ctx context.Context, walletID uuid.UUID, start, end time.Time) (*entities.AuditReport, error) {
	if end.Before(start) {
		return nil, domainerrors.BadRequest("startDate must not be after endDate")
	}
	if _, err := u.walletRepo.GetByID(ctx, walletID); err != nil {
		return nil, err
	}

	txs, err := u.txRepo.ListByWalletBetween(ctx, walletID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	blockIDs := make([]uuid.UUID, 0, len(txs))
	for _, tx := range txs {
		if tx.ReferenceLedgerID != nil {
			blockIDs = append(blockIDs, *tx.ReferenceLedgerID)
		}
	}
	blocks, err := u.ledgerRepo.GetByIDs(ctx, blockIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger blocks: %w", err)
	}

	report := &entities.AuditReport{
		WalletID:      walletID,
		StartDate:     start.UTC(),
		EndDate:       end.UTC(),
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalFees:     decimal.Zero,
		Entries:       make([]entities.AuditEntry, 0, len(txs)),
		GeneratedAt:   u.now().UTC(),
	}

	for _, tx := range txs {
		entry := entities.AuditEntry{Transaction: tx, Direction: entities.DirectionIncoming}
		outgoing := tx.FromWalletID != nil && *tx.FromWalletID == walletID
		if outgoing {
			entry.Direction = entities.DirectionOutgoing
		}
		if tx.ReferenceLedgerID != nil {
			if block, ok := blocks[*tx.ReferenceLedgerID]; ok {
				index := block.Index
				entry.BlockIndex = &index
				entry.LedgerHash = block.Hash
				entry.Signature = block.Signature.String
			}
		}
		report.Entries = append(report.Entries, entry)

		if tx.Status != entities.TransactionStatusCompleted {
			continue
		}
		report.TransactionCount++
		if outgoing {
			report.TotalSent = report.TotalSent.Add(tx.Amount)
			report.TotalFees = report.TotalFees.Add(tx.Fee)
		} else {
			report.TotalReceived = report.TotalReceived.Add(tx.Amount)
		}
	}
	return report, nil
}
