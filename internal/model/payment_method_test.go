package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"CASH", "TRANSFER", "MOBILE_PAYMENT", "FOREIGN_CURRENCY", "STORE_CREDIT"} {
		m, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}

	for _, s := range []string{"", "cash", "CARD", "EFECTIVO"} {
		_, err := ParsePaymentMethod(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestIsCredit(t *testing.T) {
	assert.True(t, MethodStoreCredit.IsCredit())
	for _, m := range []PaymentMethod{MethodCash, MethodTransfer, MethodMobilePayment, MethodForeignCurrency} {
		assert.False(t, m.IsCredit())
	}
}

func TestMovementSigned(t *testing.T) {
	in := CashMovement{Type: MovementIngress, Amount: decimal.RequireFromString("25.50")}
	out := CashMovement{Type: MovementEgress, Amount: decimal.RequireFromString("10")}

	assert.Equal(t, "25.5", in.Signed().String())
	assert.Equal(t, "-10", out.Signed().String())
}
