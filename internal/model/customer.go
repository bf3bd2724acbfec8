package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds the revolving credit account for store-credit sales.
// Invariant: 0 <= Balance <= CreditLimit after every credit operation.
type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"not null"`
	Document *string   `gorm:"type:varchar(64);uniqueIndex"`
	Phone    *string   `gorm:"type:varchar(64)"`
	Email    *string   `gorm:"type:varchar(255)"`
	// Balance is the amount the customer currently owes the business.
	Balance     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
