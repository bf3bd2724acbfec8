package dto

import "github.com/shopspring/decimal"

// Thin catalog DTOs — enough to seed and inspect products/customers; full CRUD
// screens live elsewhere.

type CreateProductRequest struct {
	Barcode   string          `json:"barcode"    validate:"required"`
	Name      string          `json:"name"       validate:"required,min=2"`
	SalePrice decimal.Decimal `json:"sale_price" validate:"required"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Stock     int             `json:"stock"      validate:"min=0"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
	IsActive  bool            `json:"is_active"`
}

// PriceLookupResponse is served from the Redis cache when warm.
type PriceLookupResponse struct {
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
}

type CreateCustomerRequest struct {
	Name        string          `json:"name"         validate:"required,min=2"`
	Document    *string         `json:"document"`
	Phone       *string         `json:"phone"`
	Email       *string         `json:"email"        validate:"omitempty,email"`
	CreditLimit decimal.Decimal `json:"credit_limit" validate:"min=0"`
}

type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Document    *string         `json:"document,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Available   decimal.Decimal `json:"available_credit"`
}
