package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cash session statuses. OPEN → CLOSED is one-way; a closed session never
// receives further movements.
const (
	SessionOpen   = "OPEN"
	SessionClosed = "CLOSED"
)

// Cash movement directions.
const (
	MovementIngress = "INGRESO"
	MovementEgress  = "EGRESO"
)

// Cash movement statuses. ANNULLED marks an entry superseded by a
// compensating movement; it is an audit flag, the row itself is never touched
// again.
const (
	MovementConfirmed = "CONFIRMED"
	MovementAnnulled  = "ANNULLED"
)

// CashSession is one cashier's open drawer. Exactly one OPEN session may
// exist per user at a time.
type CashSession struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpenedByID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ClosedByID    *uuid.UUID      `gorm:"type:uuid"`
	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ClosingAmount is the physically counted cash declared at close.
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// SystemAmount is computed at close: opening + sum of signed movements.
	SystemAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Difference   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status       string           `gorm:"type:varchar(20);not null;default:'OPEN'"`
	Notes        *string
	OpenedAt     time.Time
	ClosedAt     *time.Time

	Movements []CashMovement `gorm:"foreignKey:SessionID"`
}

// CashMovement is an append-only ledger entry posted against a session.
// Entries are never deleted; an annulment creates a new movement of the
// opposite direction and flags this one ANNULLED.
type CashMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null"`
	// Type: INGRESO | EGRESO
	Type        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null"`
	Description string          `gorm:"not null"`
	Category    string          `gorm:"type:varchar(30);not null"`
	// SaleID links back to the originating sale, ExpenseID to an expense.
	SaleID      *uuid.UUID `gorm:"type:uuid;index"`
	ExpenseID   *uuid.UUID `gorm:"type:uuid"`
	Status      string     `gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

// Signed returns the movement amount with EGRESO negated, for drawer math.
func (m *CashMovement) Signed() decimal.Decimal {
	if m.Type == MovementEgress {
		return m.Amount.Neg()
	}
	return m.Amount
}
