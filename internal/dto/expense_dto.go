package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category    string          `json:"category"    validate:"required,min=2"`
	Description string          `json:"description" validate:"required,min=3"`
	Method      string          `json:"method"      validate:"required,oneof=CASH TRANSFER MOBILE_PAYMENT FOREIGN_CURRENCY"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Reference   *string         `json:"reference"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   string          `json:"created_at"`
}
