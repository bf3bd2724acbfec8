package service

import (
	"context"
	"testing"

	"ventapos/internal/dto"
	"ventapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildExpenseSvc(t *testing.T, openSession bool) (ExpenseService, *stubCashRepo, *stubExpenseRepo, uuid.UUID, uuid.UUID) {
	t.Helper()
	cashRepo := newStubCashRepo()
	expenses := &stubExpenseRepo{}
	userID := uuid.New()
	var sessionID uuid.UUID
	if openSession {
		session := &model.CashSession{
			OpenedByID:    userID,
			OpeningAmount: d("100"),
			Status:        model.SessionOpen,
		}
		require.NoError(t, cashRepo.CreateSession(context.Background(), session))
		sessionID = session.ID
	}
	svc := NewExpenseService(expenses, NewCashService(cashRepo), cashRepo)
	return svc, cashRepo, expenses, userID, sessionID
}

func TestCreateExpense(t *testing.T) {
	svc, cashRepo, expenses, userID, sessionID := buildExpenseSvc(t, true)

	resp, err := svc.CreateExpense(context.Background(), userID, dto.CreateExpenseRequest{
		Category:    "SUPPLIES",
		Description: "printer paper",
		Method:      "CASH",
		Amount:      d("12.499"),
	})
	require.NoError(t, err)

	assert.Equal(t, "12.5", resp.Amount.String())
	require.Len(t, expenses.expenses, 1)

	// The expense drains the caller's drawer
	require.Len(t, cashRepo.movements, 1)
	mov := cashRepo.movements[0]
	assert.Equal(t, sessionID, mov.SessionID)
	assert.Equal(t, model.MovementEgress, mov.Type)
	assert.Equal(t, "EXPENSE", mov.Category)
	require.NotNil(t, mov.ExpenseID)
	assert.Equal(t, expenses.expenses[0].ID, *mov.ExpenseID)

	sum, _ := cashRepo.SumMovements(context.Background(), sessionID)
	assert.Equal(t, "-12.5", sum.String())
}

func TestCreateExpense_NoOpenSession(t *testing.T) {
	svc, _, _, userID, _ := buildExpenseSvc(t, false)

	_, err := svc.CreateExpense(context.Background(), userID, dto.CreateExpenseRequest{
		Category:    "SUPPLIES",
		Description: "printer paper",
		Method:      "CASH",
		Amount:      d("10"),
	})
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestCreateExpense_StoreCreditRejected(t *testing.T) {
	svc, _, _, userID, _ := buildExpenseSvc(t, true)

	_, err := svc.CreateExpense(context.Background(), userID, dto.CreateExpenseRequest{
		Category:    "SUPPLIES",
		Description: "printer paper",
		Method:      "STORE_CREDIT",
		Amount:      d("10"),
	})
	assert.ErrorIs(t, err, ErrCreditTenderNotAllowed)
}

func TestCreateExpense_NonPositiveAmount(t *testing.T) {
	svc, _, _, userID, _ := buildExpenseSvc(t, true)

	_, err := svc.CreateExpense(context.Background(), userID, dto.CreateExpenseRequest{
		Category:    "SUPPLIES",
		Description: "printer paper",
		Method:      "CASH",
		Amount:      d("0"),
	})
	assert.ErrorIs(t, err, ErrInvalidTenderAmount)
}
