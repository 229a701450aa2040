package models

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// MoneyScale is the number of decimal places money columns keep
const MoneyScale = 18

// Money is an exact decimal column. SQLite has no exact numeric storage
// class and would coerce NUMERIC values to REAL, so there it is kept as text.
type Money decimal.Decimal

func NewMoney(d decimal.Decimal) Money { return Money(d) }

func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }

func (Money) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "decimal(36,18)"
}

func (m Money) Value() (driver.Value, error) {
	return decimal.Decimal(m).String(), nil
}

func (m *Money) Scan(value interface{}) error {
	return (*decimal.Decimal)(m).Scan(value)
}
