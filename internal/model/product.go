package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product carries the stock counter owned by the inventory ledger.
// Stock is only ever mutated inside a sale transaction (decrement) or an
// annulment (restore) and must never go below zero.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Barcode   string          `gorm:"uniqueIndex;not null"`
	Name      string          `gorm:"index;not null"`
	SalePrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock     int             `gorm:"not null;default:0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
