package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

type CloseSessionRequest struct {
	CountedAmount decimal.Decimal `json:"counted_amount" validate:"min=0"`
	Notes         *string         `json:"notes"`
}

type ManualMovementRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=INGRESO EGRESO"`
	Method      string          `json:"method"      validate:"required,oneof=CASH TRANSFER MOBILE_PAYMENT FOREIGN_CURRENCY"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionResponse struct {
	ID            string           `json:"id"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	SystemAmount  *decimal.Decimal `json:"system_amount,omitempty"`
	ClosingAmount *decimal.Decimal `json:"closing_amount,omitempty"`
	Difference    *decimal.Decimal `json:"difference,omitempty"`
	Status        string           `json:"status"`
	Notes         *string          `json:"notes,omitempty"`
	OpenedAt      string           `json:"opened_at"`
	ClosedAt      *string          `json:"closed_at,omitempty"`
}

type CloseSessionResponse struct {
	SessionID     string          `json:"session_id"`
	SystemAmount  decimal.Decimal `json:"system_amount"`
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	Difference    decimal.Decimal `json:"difference"`
	Status        string          `json:"status"`
}

type MovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	SaleID      *string         `json:"sale_id,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
}
