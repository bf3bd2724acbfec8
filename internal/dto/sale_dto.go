package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date   string `form:"date"`   // YYYY-MM-DD; empty = all
	Status string `form:"status"` // PENDING | CREDIT | PAID | ANNULLED | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type TenderRequest struct {
	Method    string          `json:"method" validate:"required,oneof=CASH TRANSFER MOBILE_PAYMENT FOREIGN_CURRENCY STORE_CREDIT"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reference *string         `json:"reference"`
}

type CreateSaleRequest struct {
	CustomerID *string           `json:"customer_id" validate:"omitempty,uuid"`
	Items      []SaleItemRequest `json:"items"       validate:"required,min=1,dive"`
	Discount   decimal.Decimal   `json:"discount"`
	Tenders    []TenderRequest   `json:"tenders"     validate:"dive"`
	// CustomerEmail: optional — when present, the receipt worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

type PaySaleRequest struct {
	Tenders []TenderRequest `json:"tenders" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type TenderResponse struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference *string         `json:"reference,omitempty"`
}

type SaleResponse struct {
	ID         string             `json:"id"`
	Code       string             `json:"code"`
	CustomerID *string            `json:"customer_id,omitempty"`
	SellerID   string             `json:"seller_id"`
	Items      []SaleItemResponse `json:"items"`
	Tenders    []TenderResponse   `json:"tenders"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Discount   decimal.Decimal    `json:"discount"`
	Total      decimal.Decimal    `json:"total"`
	Paid       decimal.Decimal    `json:"paid"`
	Balance    decimal.Decimal    `json:"balance"`
	Status     string             `json:"status"`
	CreatedAt  string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// PaySaleResponse mirrors the fields the POS screen refreshes after an abono.
type PaySaleResponse struct {
	SaleID  string          `json:"sale_id"`
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}

type AnnulSaleResponse struct {
	SaleID string `json:"sale_id"`
	Status string `json:"status"`
}
