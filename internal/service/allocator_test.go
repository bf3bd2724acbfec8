package service

import (
	"errors"
	"testing"

	"ventapos/internal/dto"
	"ventapos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestAllocateTenders_SplitsCreditFromRealMoney(t *testing.T) {
	alloc, err := AllocateTenders(d("150"), []dto.TenderRequest{
		{Method: "CASH", Amount: d("50")},
		{Method: "TRANSFER", Amount: d("40")},
		{Method: "STORE_CREDIT", Amount: d("60")},
	})
	require.NoError(t, err)

	assert.Equal(t, "90", alloc.Paid.String())
	assert.Equal(t, "60", alloc.Credit.String())
	assert.Equal(t, "60", alloc.Balance.String()) // balance excludes credit
	require.Len(t, alloc.Tenders, 3)
	assert.Equal(t, model.MethodTransfer, alloc.Tenders[1].Method)
}

func TestAllocateTenders_RoundsBeforeSumming(t *testing.T) {
	alloc, err := AllocateTenders(d("10"), []dto.TenderRequest{
		{Method: "CASH", Amount: d("3.333")},
		{Method: "CASH", Amount: d("3.333")},
		{Method: "CASH", Amount: d("3.334")},
	})
	require.NoError(t, err)

	// 3.33 + 3.33 + 3.33 after per-tender rounding
	assert.Equal(t, "9.99", alloc.Paid.String())
	assert.Equal(t, "0.01", alloc.Balance.String())
}

func TestAllocateTenders_RejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []string{"0", "-5", "0.004"} {
		_, err := AllocateTenders(d("10"), []dto.TenderRequest{
			{Method: "CASH", Amount: d(amount)},
		})
		assert.ErrorIs(t, err, ErrInvalidTenderAmount, "amount %s", amount)
	}
}

func TestAllocateTenders_RejectsUnknownMethod(t *testing.T) {
	_, err := AllocateTenders(d("10"), []dto.TenderRequest{
		{Method: "BITCOIN", Amount: d("10")},
	})
	assert.Error(t, err)
}

func TestAllocateTenders_RejectsOverpayment(t *testing.T) {
	_, err := AllocateTenders(d("10"), []dto.TenderRequest{
		{Method: "CASH", Amount: d("6")},
		{Method: "STORE_CREDIT", Amount: d("6")},
	})

	var overErr *PaymentExceedsTotalError
	require.True(t, errors.As(err, &overErr))
	assert.Equal(t, "12", overErr.Tendered.String())
}

func TestAllocateTenders_EmptyTenderList(t *testing.T) {
	alloc, err := AllocateTenders(d("25"), nil)
	require.NoError(t, err)

	assert.True(t, alloc.Paid.IsZero())
	assert.True(t, alloc.Credit.IsZero())
	assert.Equal(t, "25", alloc.Balance.String())
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name                string
		credit, paid, total string
		want                string
	}{
		{"full payment", "0", "100", "100", model.SaleStatusPaid},
		{"partial payment", "0", "40", "100", model.SaleStatusPending},
		{"no payment", "0", "0", "100", model.SaleStatusPending},
		{"any credit wins", "10", "90", "100", model.SaleStatusCredit},
		{"credit only", "100", "0", "100", model.SaleStatusCredit},
		{"zero total", "0", "0", "0", model.SaleStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(d(tc.credit), d(tc.paid), d(tc.total)))
		})
	}
}
