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

func buildCashSvc() (CashService, *stubCashRepo) {
	repo := newStubCashRepo()
	return NewCashService(repo), repo
}

func movement(moveType string, amount string) dto.ManualMovementRequest {
	return dto.ManualMovementRequest{
		Type:        moveType,
		Method:      "CASH",
		Amount:      d(amount),
		Description: "manual drawer adjustment",
	}
}

func TestOpenSession(t *testing.T) {
	svc, _ := buildCashSvc()
	userID := uuid.New()

	resp, err := svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("150.505")})
	require.NoError(t, err)

	assert.Equal(t, model.SessionOpen, resp.Status)
	assert.Equal(t, "150.51", resp.OpeningAmount.String()) // rounded on open
	assert.Nil(t, resp.ClosedAt)
}

func TestOpenSession_AlreadyOpen(t *testing.T) {
	svc, _ := buildCashSvc()
	userID := uuid.New()

	_, err := svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("100")})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("100")})
	assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
}

func TestOpenSession_PerUser(t *testing.T) {
	svc, _ := buildCashSvc()

	_, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{OpeningAmount: d("100")})
	require.NoError(t, err)

	// A different cashier can open their own session
	_, err = svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{OpeningAmount: d("50")})
	assert.NoError(t, err)
}

func TestCloseSession_Reconciliation(t *testing.T) {
	svc, _ := buildCashSvc()
	userID := uuid.New()

	_, err := svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("100")})
	require.NoError(t, err)

	require.NoError(t, svc.RecordManualMovement(context.Background(), userID, movement(model.MovementIngress, "250")))
	require.NoError(t, svc.RecordManualMovement(context.Background(), userID, movement(model.MovementEgress, "30")))

	// system = 100 + 250 - 30 = 320; counted short by 5
	resp, err := svc.Close(context.Background(), userID, dto.CloseSessionRequest{CountedAmount: d("315")})
	require.NoError(t, err)

	assert.Equal(t, "320", resp.SystemAmount.String())
	assert.Equal(t, "315", resp.ClosingAmount.String())
	assert.Equal(t, "-5", resp.Difference.String())
	assert.Equal(t, model.SessionClosed, resp.Status)
}

func TestCloseSession_NoOpenSession(t *testing.T) {
	svc, _ := buildCashSvc()

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseSessionRequest{CountedAmount: d("0")})
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestCloseSession_Twice(t *testing.T) {
	svc, _ := buildCashSvc()
	userID := uuid.New()

	_, err := svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("100")})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), userID, dto.CloseSessionRequest{CountedAmount: d("100")})
	require.NoError(t, err)

	// Session is gone for this user; a second close has nothing to act on
	_, err = svc.Close(context.Background(), userID, dto.CloseSessionRequest{CountedAmount: d("100")})
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestRecordManualMovement_RequiresOpenSession(t *testing.T) {
	svc, _ := buildCashSvc()

	err := svc.RecordManualMovement(context.Background(), uuid.New(), movement(model.MovementEgress, "20"))
	assert.ErrorIs(t, err, ErrNoOpenSession)
}

func TestSessionStatus(t *testing.T) {
	svc, _ := buildCashSvc()
	userID := uuid.New()

	_, err := svc.Status(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNoOpenSession)

	opened, err := svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("75")})
	require.NoError(t, err)

	status, err := svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, status.ID)
	assert.Equal(t, model.SessionOpen, status.Status)
}

func TestListMovements(t *testing.T) {
	svc, repo := buildCashSvc()
	userID := uuid.New()

	opened, err := svc.Open(context.Background(), userID, dto.OpenSessionRequest{OpeningAmount: d("100")})
	require.NoError(t, err)

	require.NoError(t, svc.RecordManualMovement(context.Background(), userID, movement(model.MovementIngress, "10")))
	require.NoError(t, svc.RecordManualMovement(context.Background(), userID, movement(model.MovementEgress, "4")))

	movs, err := svc.ListMovements(context.Background(), uuid.MustParse(opened.ID))
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "MANUAL", movs[0].Category)
	assert.Equal(t, model.MovementConfirmed, movs[0].Status)

	sum, err := repo.SumMovements(context.Background(), uuid.MustParse(opened.ID))
	require.NoError(t, err)
	assert.Equal(t, "6", sum.String())
}
