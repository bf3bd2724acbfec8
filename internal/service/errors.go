package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine error taxonomy. Every one of these aborts the enclosing transaction
// before any write is flushed; handlers map them onto HTTP status codes.

// Validation errors — caller mistakes, no state change.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInactive     = errors.New("product is inactive and cannot be sold")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidDiscount     = errors.New("discount is negative or exceeds the subtotal")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrInvalidTenderAmount = errors.New("tender amount must be greater than zero")
)

// Auth errors — always mapped to 401 without detail.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Business-rule conflicts.
var (
	ErrCustomerRequired       = errors.New("a customer is required for store-credit tenders")
	ErrNoOpenSession          = errors.New("no open cash register session for this user")
	ErrSessionAlreadyOpen     = errors.New("an open cash register session already exists for this user")
	ErrSessionClosed          = errors.New("cash register session is already closed")
	ErrSaleAlreadyPaid        = errors.New("sale is already fully paid")
	ErrSaleAnnulled           = errors.New("sale is annulled")
	ErrCreditTenderNotAllowed = errors.New("store-credit tenders are not accepted on installment payments")
)

// OutOfStockError reports a stock shortfall observed under the row lock.
type OutOfStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested %d, available %d)",
		e.ProductName, e.Requested, e.Available)
}

// CreditLimitExceededError is returned when a charge would push a customer's
// balance past their credit limit. Nothing has been written when it fires.
type CreditLimitExceededError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded (available %s, requested %s)",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

// PaymentExceedsTotalError is returned by the allocator when the tender list
// sums past the sale total.
type PaymentExceedsTotalError struct {
	Tendered decimal.Decimal
	Total    decimal.Decimal
}

func (e *PaymentExceedsTotalError) Error() string {
	return fmt.Sprintf("tendered amount %s exceeds the sale total %s",
		e.Tendered.StringFixed(2), e.Total.StringFixed(2))
}

// PaymentExceedsBalanceError is returned by RecordPayment when the new
// tenders sum past the sale's remaining balance.
type PaymentExceedsBalanceError struct {
	Tendered decimal.Decimal
	Balance  decimal.Decimal
}

func (e *PaymentExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment %s exceeds the remaining balance %s",
		e.Tendered.StringFixed(2), e.Balance.StringFixed(2))
}
