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

// ExpenseService records operating expenses. Creating an expense and posting
// its EGRESO movement against the caller's open session is one transaction.
type ExpenseService interface {
	CreateExpense(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
}

type expenseService struct {
	repo     repository.ExpenseRepository
	cash     CashService
	cashRepo repository.CashRepository
}

func NewExpenseService(repo repository.ExpenseRepository, cash CashService, cashRepo repository.CashRepository) ExpenseService {
	return &expenseService{repo: repo, cash: cash, cashRepo: cashRepo}
}

func (s *expenseService) CreateExpense(ctx context.Context, userID uuid.UUID, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	method, err := model.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if method.IsCredit() {
		return nil, ErrCreditTenderNotAllowed
	}
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidTenderAmount
	}

	var expense model.Expense
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		session, err := s.cash.RequireOpenForTx(tx, userID)
		if err != nil {
			return err
		}

		expense = model.Expense{
			Category:    req.Category,
			Description: req.Description,
			Method:      method,
			Amount:      amount,
			Reference:   req.Reference,
			CreatedByID: userID,
		}
		if err := s.repo.CreateTx(tx, &expense); err != nil {
			return err
		}

		mov := model.CashMovement{
			SessionID:   session.ID,
			Type:        model.MovementEgress,
			Amount:      amount,
			Method:      method,
			Description: req.Description,
			Category:    "EXPENSE",
			ExpenseID:   &expense.ID,
			Status:      model.MovementConfirmed,
			CreatedByID: userID,
		}
		return s.cashRepo.CreateMovementTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.ExpenseResponse{
		ID:          expense.ID.String(),
		Category:    expense.Category,
		Description: expense.Description,
		Method:      expense.Method.String(),
		Amount:      expense.Amount,
		CreatedAt:   expense.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}
