package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ventapos/internal/dto"
	"ventapos/internal/model"
	"ventapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. The services run their transactions through
// runTx, which calls the closure with a nil *gorm.DB when the repo's DB() is
// nil, so no database is needed.

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) List(_ context.Context, _ bool) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func seedProduct(r *stubProductRepo, name string, price float64, stock int) *model.Product {
	p := &model.Product{
		ID:        uuid.New(),
		Barcode:   fmt.Sprintf("779%010d", len(r.products)+1),
		Name:      name,
		SalePrice: decimal.NewFromFloat(price),
		Stock:     stock,
		IsActive:  true,
	}
	r.products[p.ID] = p
	return p
}

// ── Customers ─────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) SetBalanceTx(_ *gorm.DB, id uuid.UUID, balance decimal.Decimal) error {
	c, ok := r.customers[id]
	if !ok {
		return errors.New("not found")
	}
	c.Balance = balance
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

func seedCustomer(r *stubCustomerRepo, name string, limit float64) *model.Customer {
	c := &model.Customer{
		ID:          uuid.New(),
		Name:        name,
		Balance:     decimal.Zero,
		CreditLimit: decimal.NewFromFloat(limit),
	}
	r.customers[c.ID] = c
	return c
}

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	codeSeq int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
	}
	for i := range s.Tenders {
		s.Tenders[i].SaleID = s.ID
	}
	s.CreatedAt = time.Now()
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSaleRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return errors.New("not found")
	}
	stored.Paid = s.Paid
	stored.Balance = s.Balance
	stored.Status = s.Status
	return nil
}

func (r *stubSaleRepo) AppendTenderTx(_ *gorm.DB, t *model.Tender) error {
	s, ok := r.sales[t.SaleID]
	if !ok {
		return errors.New("not found")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.Tenders = append(s.Tenders, *t)
	return nil
}

func (r *stubSaleRepo) NextCode(_ *gorm.DB, now time.Time) (string, error) {
	r.codeSeq++
	return fmt.Sprintf("VENTA-%s-%03d", now.UTC().Format("20060102"), r.codeSeq), nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Cash ──────────────────────────────────────────────────────────────────────

type stubCashRepo struct {
	sessions  map[uuid.UUID]*model.CashSession // keyed by session ID
	movements []model.CashMovement
}

func newStubCashRepo() *stubCashRepo {
	return &stubCashRepo{sessions: make(map[uuid.UUID]*model.CashSession)}
}

func (r *stubCashRepo) CreateSession(_ context.Context, s *model.CashSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubCashRepo) FindOpenByUser(_ context.Context, userID uuid.UUID) (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.OpenedByID == userID && s.Status == model.SessionOpen {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCashRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubCashRepo) UpdateSession(_ context.Context, s *model.CashSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubCashRepo) ListMovements(_ context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var out []model.CashMovement
	for _, m := range r.movements {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCashRepo) SumMovements(_ context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.movements {
		if r.movements[i].SessionID == sessionID {
			sum = sum.Add(r.movements[i].Signed())
		}
	}
	return sum, nil
}

func (r *stubCashRepo) FindOpenByUserTx(_ *gorm.DB, userID uuid.UUID) (*model.CashSession, error) {
	return r.FindOpenByUser(context.Background(), userID)
}

func (r *stubCashRepo) UpdateSessionTx(_ *gorm.DB, s *model.CashSession) error {
	return r.UpdateSession(context.Background(), s)
}

func (r *stubCashRepo) SumMovementsTx(_ *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	return r.SumMovements(context.Background(), sessionID)
}

func (r *stubCashRepo) CreateMovementTx(_ *gorm.DB, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubCashRepo) FindConfirmedBySaleTx(_ *gorm.DB, saleID uuid.UUID) ([]model.CashMovement, error) {
	var out []model.CashMovement
	for _, m := range r.movements {
		if m.SaleID != nil && *m.SaleID == saleID && m.Status == model.MovementConfirmed {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCashRepo) MarkMovementAnnulledTx(_ *gorm.DB, movementID uuid.UUID) error {
	for i := range r.movements {
		if r.movements[i].ID == movementID {
			r.movements[i].Status = model.MovementAnnulled
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubCashRepo) DB() *gorm.DB { return nil }

var _ repository.CashRepository = (*stubCashRepo)(nil)

// ── Stock movements ───────────────────────────────────────────────────────────

type stubStockMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubStockMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

var _ repository.StockMovementRepository = (*stubStockMovementRepo)(nil)

// ── Expenses ──────────────────────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses []model.Expense
}

func (r *stubExpenseRepo) CreateTx(_ *gorm.DB, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubExpenseRepo) DB() *gorm.DB { return nil }

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)
