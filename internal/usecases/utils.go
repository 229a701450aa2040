package usecases

import (
	"time"

	"github.com/shopspring/decimal"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
)

// calculateFee returns amount * rate rounded to the stored money scale
func calculateFee(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(moneyScale)
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerrors.BadRequest("amount must be greater than zero")
	}
	if !amount.Round(moneyScale).Equal(amount) {
		return domainerrors.BadRequest("amount has more than 18 decimal places")
	}
	return nil
}

// timestampMeta formats t the way metadata timestamps are stored
func timestampMeta(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// userDisplay returns the name and role recorded in transfer metadata
func userDisplay(u *entities.User) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.FullName(), string(u.Role)
}

// lockOrder returns a and b ordered by id so concurrent lockers agree
func lockOrder(a, b *entities.Wallet) (*entities.Wallet, *entities.Wallet) {
	if a.ID.String() <= b.ID.String() {
		return a, b
	}
	return b, a
}
