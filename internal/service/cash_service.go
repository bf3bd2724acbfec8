package service

import (
	"context"
	"time"

	"ventapos/internal/dto"
	"ventapos/internal/model"
	"ventapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashService manages cash register sessions and manual drawer movements.
// Sale-related movements are posted by the sale coordinator through the
// repository directly, inside its own transaction.
type CashService interface {
	Open(ctx context.Context, userID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context, userID uuid.UUID, req dto.CloseSessionRequest) (*dto.CloseSessionResponse, error)
	Status(ctx context.Context, userID uuid.UUID) (*dto.SessionResponse, error)
	RecordManualMovement(ctx context.Context, userID uuid.UUID, req dto.ManualMovementRequest) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]dto.MovementResponse, error)

	// RequireOpenFor returns the user's OPEN session or ErrNoOpenSession.
	// Called by every operation that needs to post a movement.
	RequireOpenFor(ctx context.Context, userID uuid.UUID) (*model.CashSession, error)
	// RequireOpenForTx is the in-transaction variant used by the coordinator;
	// it locks the session row until the sale commits.
	RequireOpenForTx(tx *gorm.DB, userID uuid.UUID) (*model.CashSession, error)
}

type cashService struct {
	repo repository.CashRepository
}

func NewCashService(repo repository.CashRepository) CashService {
	return &cashService{repo: repo}
}

func (s *cashService) Open(ctx context.Context, userID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if existing, err := s.repo.FindOpenByUser(ctx, userID); err == nil && existing != nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := &model.CashSession{
		OpenedByID:    userID,
		OpeningAmount: req.OpeningAmount.Round(2),
		Status:        model.SessionOpen,
		OpenedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

// Close snapshots the computed system amount against the counted amount and
// marks the session CLOSED. One-way: a closed session never reopens and never
// receives further movements. The session row is locked for the whole arqueo
// so no sale can post a movement between the sum and the status flip.
func (s *cashService) Close(ctx context.Context, userID uuid.UUID, req dto.CloseSessionRequest) (*dto.CloseSessionResponse, error) {
	var resp *dto.CloseSessionResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		session, err := s.RequireOpenForTx(tx, userID)
		if err != nil {
			return err
		}

		sum, err := s.repo.SumMovementsTx(tx, session.ID)
		if err != nil {
			return err
		}

		system := session.OpeningAmount.Add(sum).Round(2)
		counted := req.CountedAmount.Round(2)
		difference := counted.Sub(system)
		now := time.Now().UTC()

		session.SystemAmount = &system
		session.ClosingAmount = &counted
		session.Difference = &difference
		session.Status = model.SessionClosed
		session.ClosedByID = &userID
		session.ClosedAt = &now
		session.Notes = req.Notes

		if err := s.repo.UpdateSessionTx(tx, session); err != nil {
			return err
		}

		resp = &dto.CloseSessionResponse{
			SessionID:     session.ID.String(),
			SystemAmount:  system,
			ClosingAmount: counted,
			Difference:    difference,
			Status:        session.Status,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *cashService) Status(ctx context.Context, userID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.RequireOpenFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *cashService) RecordManualMovement(ctx context.Context, userID uuid.UUID, req dto.ManualMovementRequest) error {
	session, err := s.RequireOpenFor(ctx, userID)
	if err != nil {
		return err
	}
	method, err := model.ParsePaymentMethod(req.Method)
	if err != nil {
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateMovementTx(tx, &model.CashMovement{
			SessionID:   session.ID,
			Type:        req.Type,
			Amount:      req.Amount.Round(2),
			Method:      method,
			Description: req.Description,
			Category:    "MANUAL",
			Status:      model.MovementConfirmed,
			CreatedByID: userID,
		})
	})
}

func (s *cashService) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]dto.MovementResponse, error) {
	movs, err := s.repo.ListMovements(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, movementToResponse(&m))
	}
	return out, nil
}

func (s *cashService) RequireOpenFor(ctx context.Context, userID uuid.UUID) (*model.CashSession, error) {
	session, err := s.repo.FindOpenByUser(ctx, userID)
	if err != nil || session == nil {
		return nil, ErrNoOpenSession
	}
	return session, nil
}

func (s *cashService) RequireOpenForTx(tx *gorm.DB, userID uuid.UUID) (*model.CashSession, error) {
	session, err := s.repo.FindOpenByUserTx(tx, userID)
	if err != nil || session == nil {
		return nil, ErrNoOpenSession
	}
	return session, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func sessionToResponse(s *model.CashSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:            s.ID.String(),
		OpeningAmount: s.OpeningAmount,
		SystemAmount:  s.SystemAmount,
		ClosingAmount: s.ClosingAmount,
		Difference:    s.Difference,
		Status:        s.Status,
		Notes:         s.Notes,
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}

func movementToResponse(m *model.CashMovement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:          m.ID.String(),
		Type:        m.Type,
		Amount:      m.Amount,
		Method:      m.Method.String(),
		Description: m.Description,
		Category:    m.Category,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.SaleID != nil {
		id := m.SaleID.String()
		resp.SaleID = &id
	}
	return resp
}
