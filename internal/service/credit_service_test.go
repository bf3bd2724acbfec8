package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailable(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCreditService(repo)
	cust := seedCustomer(repo, "Pedro", 300)
	cust.Balance = d("120")

	available, err := svc.CheckAvailable(context.Background(), cust.ID)
	require.NoError(t, err)
	assert.Equal(t, "180", available.String())

	_, err = svc.CheckAvailable(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestChargeTx(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCreditService(repo)
	cust := seedCustomer(repo, "Pedro", 300)

	require.NoError(t, svc.ChargeTx(context.Background(), nil, cust.ID, d("100.005")))
	assert.Equal(t, "100.01", repo.customers[cust.ID].Balance.String())

	// Charging up to the exact limit is allowed
	require.NoError(t, svc.ChargeTx(context.Background(), nil, cust.ID, d("199.99")))
	assert.Equal(t, "300", repo.customers[cust.ID].Balance.String())
}

func TestChargeTx_LimitExceeded(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCreditService(repo)
	cust := seedCustomer(repo, "Pedro", 100)
	cust.Balance = d("80")

	err := svc.ChargeTx(context.Background(), nil, cust.ID, d("30"))

	var limitErr *CreditLimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "20", limitErr.Available.String())
	assert.Equal(t, "30", limitErr.Requested.String())

	// Balance untouched on rejection
	assert.Equal(t, "80", repo.customers[cust.ID].Balance.String())
}

func TestRefundTx_ClampsAtZero(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCreditService(repo)
	cust := seedCustomer(repo, "Pedro", 300)
	cust.Balance = d("50")

	require.NoError(t, svc.RefundTx(context.Background(), nil, cust.ID, d("30")))
	assert.Equal(t, "20", repo.customers[cust.ID].Balance.String())

	// Over-refund never drives the balance negative
	require.NoError(t, svc.RefundTx(context.Background(), nil, cust.ID, d("500")))
	assert.True(t, repo.customers[cust.ID].Balance.IsZero())
}

func TestCreditTx_UnknownCustomer(t *testing.T) {
	svc := NewCreditService(newStubCustomerRepo())

	assert.ErrorIs(t, svc.ChargeTx(context.Background(), nil, uuid.New(), d("10")), ErrCustomerNotFound)
	assert.ErrorIs(t, svc.RefundTx(context.Background(), nil, uuid.New(), d("10")), ErrCustomerNotFound)
}
