package repository

import (
	"ventapos/internal/model"

	"gorm.io/gorm"
)

type ExpenseRepository interface {
	// CreateTx runs inside the transaction that also posts the EGRESO movement.
	CreateTx(tx *gorm.DB, e *model.Expense) error
	DB() *gorm.DB
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) CreateTx(tx *gorm.DB, e *model.Expense) error {
	return tx.Create(e).Error
}

func (r *expenseRepo) DB() *gorm.DB { return r.db }
