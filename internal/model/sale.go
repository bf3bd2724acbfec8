package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. ANNULLED forces Paid and Balance to zero; for every other
// status Paid + Balance == Total holds.
const (
	SaleStatusPending  = "PENDING"
	SaleStatusCredit   = "CREDIT"
	SaleStatusPaid     = "PAID"
	SaleStatusAnnulled = "ANNULLED"
)

// Sale is one retail transaction. Created once by the sale coordinator;
// afterwards it only changes through RecordPayment and AnnulSale.
type Sale struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Code is the date-scoped sequential identifier, e.g. VENTA-20240101-001.
	// The unique index is the real uniqueness guarantee, not the counter query.
	Code       string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"`
	SellerID   uuid.UUID       `gorm:"type:uuid;not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Paid sums only non-credit tenders actually applied.
	Paid      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status    string          `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
	Tenders  []Tender   `gorm:"foreignKey:SaleID"`
}

// SaleItem snapshots one sold line at sale time. Never mutated; Quantity is
// the amount by which stock was decremented and, on annulment, restored.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// Tender is one payment instrument applied to a sale. Append-only: a
// reversal never deletes a tender, it only produces a compensating movement.
type Tender struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reference *string         `gorm:"type:varchar(100)"`
	CreatedAt time.Time
}
