package service

import (
	"context"

	"ventapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditService owns the customer's revolving balance. Charge and Refund run
// inside the sale coordinator's transaction; the row lock makes the limit
// check and the balance write atomic.
type CreditService interface {
	// CheckAvailable returns limit − balance. Read-only pre-validation.
	CheckAvailable(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// ChargeTx adds amount to the balance after verifying the limit.
	ChargeTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, amount decimal.Decimal) error

	// RefundTx subtracts amount from the balance, clamped at zero.
	RefundTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, amount decimal.Decimal) error
}

type creditService struct {
	customers repository.CustomerRepository
}

func NewCreditService(customers repository.CustomerRepository) CreditService {
	return &creditService{customers: customers}
}

func (s *creditService) CheckAvailable(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, ErrCustomerNotFound
	}
	return c.CreditLimit.Sub(c.Balance), nil
}

func (s *creditService) ChargeTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, amount decimal.Decimal) error {
	c, err := s.customers.FindByIDForUpdateTx(tx, customerID)
	if err != nil {
		return ErrCustomerNotFound
	}

	available := c.CreditLimit.Sub(c.Balance)
	if amount.GreaterThan(available) {
		return &CreditLimitExceededError{Available: available, Requested: amount}
	}

	return s.customers.SetBalanceTx(tx, customerID, c.Balance.Add(amount).Round(2))
}

func (s *creditService) RefundTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, amount decimal.Decimal) error {
	c, err := s.customers.FindByIDForUpdateTx(tx, customerID)
	if err != nil {
		return ErrCustomerNotFound
	}

	newBalance := c.Balance.Sub(amount).Round(2)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	return s.customers.SetBalanceTx(tx, customerID, newBalance)
}
