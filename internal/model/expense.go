package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cash outflow unrelated to sales (supplies, services, etc).
// Creating one posts a single EGRESO movement against the open session.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string          `gorm:"type:varchar(50);not null"`
	Description string          `gorm:"not null"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reference   *string         `gorm:"type:varchar(100)"`
	CreatedByID uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}
