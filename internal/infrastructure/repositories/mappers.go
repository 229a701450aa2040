package repositories

import (
	"encoding/json"
	"time"

	"ledger-chain.backend/internal/domain/entities"
	"ledger-chain.backend/internal/infrastructure/models"
)

func walletToEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:               m.ID,
		UserID:           m.UserID,
		WalletAddress:    m.WalletAddress,
		BalanceAvailable: m.BalanceAvailable.Decimal(),
		BalanceLocked:    m.BalanceLocked.Decimal(),
		KYCStatus:        entities.KYCStatus(m.KYCStatus),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func encodeMetadata(meta entities.Metadata) (string, error) {
	if meta == nil {
		return "{}", nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMetadata(raw string) entities.Metadata {
	meta := entities.Metadata{}
	if raw == "" {
		return meta
	}
	_ = json.Unmarshal([]byte(raw), &meta)
	return meta
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:                m.ID,
		FromWalletID:      m.FromWalletID,
		ToWalletID:        m.ToWalletID,
		Amount:            m.Amount.Decimal(),
		Fee:               m.Fee.Decimal(),
		TransactionType:   entities.TransactionType(m.TransactionType),
		Status:            entities.TransactionStatus(m.Status),
		Description:       m.Description,
		Metadata:          decodeMetadata(m.Metadata),
		ReferenceLedgerID: m.ReferenceLedgerID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func blockToEntity(m *models.LedgerBlock) *entities.LedgerBlock {
	return &entities.LedgerBlock{
		ID:           m.ID,
		Index:        m.BlockIndex,
		PreviousHash: m.PreviousHash,
		Hash:         m.Hash,
		Payload:      json.RawMessage(m.Payload),
		BlockType:    entities.BlockType(m.BlockType),
		Signature:    m.Signature,
		Timestamp:    time.UnixMilli(m.TimestampMs).UTC(),
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
	}
}

func withdrawalToEntity(m *models.WithdrawalRequest) *entities.WithdrawalRequest {
	return &entities.WithdrawalRequest{
		ID:        m.ID,
		WalletID:  m.WalletID,
		Amount:    m.Amount.Decimal(),
		Fee:       m.Fee.Decimal(),
		NetAmount: m.NetAmount.Decimal(),
		BankDetails: entities.BankDetails{
			AccountHolder: m.AccountHolder,
			IBAN:          m.IBAN,
			BankName:      m.BankName,
		},
		Status:            entities.WithdrawalStatus(m.Status),
		ReferenceLedgerID: m.ReferenceLedgerID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func bookingToEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:                 m.ID,
		StudentID:          m.StudentID,
		TutorID:            m.TutorID,
		AnnonceID:          m.AnnonceID,
		Amount:             m.Amount.Decimal(),
		Description:        m.Description,
		Status:             entities.BookingStatus(m.Status),
		BlockchainStatus:   entities.BlockchainStatus(m.BlockchainStatus),
		TransactionID:      m.TransactionID,
		LedgerBlockHash:    m.LedgerBlockHash,
		LastError:          m.LastError,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
		CancellationReason: m.CancellationReason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func bookingToModel(b *entities.Booking) *models.Booking {
	return &models.Booking{
		ID:                 b.ID,
		StudentID:          b.StudentID,
		TutorID:            b.TutorID,
		AnnonceID:          b.AnnonceID,
		Amount:             models.NewMoney(b.Amount),
		Description:        b.Description,
		Status:             string(b.Status),
		BlockchainStatus:   string(b.BlockchainStatus),
		TransactionID:      b.TransactionID,
		LedgerBlockHash:    b.LedgerBlockHash,
		LastError:          b.LastError,
		ConfirmedAt:        b.ConfirmedAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
