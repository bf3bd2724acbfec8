package service

import (
	"context"
	"fmt"
	"time"

	"ventapos/internal/dto"
	"ventapos/internal/model"
	"ventapos/internal/repository"
	"ventapos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the sale transaction coordinator. Every operation runs
// inside exactly one database transaction: either the sale, its line items,
// its tenders, its cash movements, and the stock/credit side effects all
// persist together, or none do.
type SaleService interface {
	CreateSale(ctx context.Context, sellerID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	RecordPayment(ctx context.Context, userID uuid.UUID, saleID uuid.UUID, req dto.PaySaleRequest) (*dto.PaySaleResponse, error)
	AnnulSale(ctx context.Context, userID uuid.UUID, saleID uuid.UUID) (*dto.AnnulSaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	inventory  InventoryService
	credit     CreditService
	cash       CashService
	cashRepo   repository.CashRepository
	customers  repository.CustomerRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	inventory InventoryService,
	credit CreditService,
	cash CashService,
	cashRepo repository.CashRepository,
	customers repository.CustomerRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:       repo,
		inventory:  inventory,
		credit:     credit,
		cash:       cash,
		cashRepo:   cashRepo,
		customers:  customers,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CreateSale ────────────────────────────────────────────────────────────────
//
// Single ACID transaction:
//  1. lock + decrement stock per line item, snapshotting unit prices
//  2. total = subtotal − discount (reject invalid discounts)
//  3. allocate tenders; charge the store-credit portion against the customer
//  4. persist sale + items + tenders, next date-scoped code
//  5. one INGRESO movement per real-money tender against the open session
//
// Any failure rolls the whole unit back, stock decrements included.

func (s *saleService) CreateSale(ctx context.Context, sellerID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// Fast-fail before touching stock. The authoritative check runs again
	// inside the transaction, under the session row lock.
	if _, err := s.cash.RequireOpenFor(ctx, sellerID); err != nil {
		return nil, err
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrCustomerNotFound
		}
		if _, err := s.customers.FindByID(ctx, id); err != nil {
			return nil, ErrCustomerNotFound
		}
		customerID = &id
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		code, err := s.repo.NextCode(tx, time.Now())
		if err != nil {
			return err
		}

		subtotal := decimal.Zero
		items := make([]model.SaleItem, 0, len(req.Items))
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return ErrProductNotFound
			}
			p, err := s.inventory.ReserveAndDecrement(ctx, tx, pid, item.Quantity, nil, "Sale "+code)
			if err != nil {
				return err
			}
			lineSubtotal := p.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
			subtotal = subtotal.Add(lineSubtotal)
			items = append(items, model.SaleItem{
				ProductID: pid,
				Quantity:  item.Quantity,
				UnitPrice: p.SalePrice,
				Subtotal:  lineSubtotal,
			})
		}

		discount := req.Discount.Round(2)
		if discount.IsNegative() || discount.GreaterThan(subtotal) {
			return ErrInvalidDiscount
		}
		total := subtotal.Sub(discount).Round(2)

		alloc, err := AllocateTenders(total, req.Tenders)
		if err != nil {
			return err
		}

		if alloc.Credit.IsPositive() {
			if customerID == nil {
				return ErrCustomerRequired
			}
			if err := s.credit.ChargeTx(ctx, tx, *customerID, alloc.Credit); err != nil {
				return err
			}
		}

		sale = model.Sale{
			Code:       code,
			CustomerID: customerID,
			SellerID:   sellerID,
			Subtotal:   subtotal,
			Discount:   discount,
			Total:      total,
			Paid:       alloc.Paid,
			Balance:    alloc.Balance,
			Status:     DeriveStatus(alloc.Credit, alloc.Paid, total),
			Items:      items,
			Tenders:    alloc.Tenders,
		}
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// Locks the session row until commit: a concurrent Close cannot
		// slip between the check and the movement writes.
		session, err := s.cash.RequireOpenForTx(tx, sellerID)
		if err != nil {
			return err
		}

		// One confirmed movement per real-money tender. Store-credit tenders
		// never touch the drawer.
		for _, t := range sale.Tenders {
			if t.Method.IsCredit() {
				continue
			}
			mov := model.CashMovement{
				SessionID:   session.ID,
				Type:        model.MovementIngress,
				Amount:      t.Amount,
				Method:      t.Method,
				Description: "Sale " + code,
				Category:    "SALE",
				SaleID:      &sale.ID,
				Status:      model.MovementConfirmed,
				CreatedByID: sellerID,
			}
			if err := s.cashRepo.CreateMovementTx(tx, &mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt generation is async and best-effort — a queue failure never
	// fails a committed sale.
	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{SaleID: sale.ID.String()}
		if req.CustomerEmail != nil && *req.CustomerEmail != "" {
			payload.CustomerEmail = req.CustomerEmail
		}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to enqueue receipt job")
		}
	}

	return saleToResponse(&sale), nil
}

// ── RecordPayment ─────────────────────────────────────────────────────────────
//
// Installment payment (abono). Store-credit tenders are forbidden here: an
// abono is real money reducing an existing balance. Each tender posts one
// INGRESO movement against the caller's open session, and when the sale has a
// customer the payment also reduces their credit-account debt.

func (s *saleService) RecordPayment(ctx context.Context, userID uuid.UUID, saleID uuid.UUID, req dto.PaySaleRequest) (*dto.PaySaleResponse, error) {
	var resp dto.PaySaleResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sale, err := s.repo.FindByIDTx(tx, saleID)
		if err != nil {
			return ErrSaleNotFound
		}
		switch sale.Status {
		case model.SaleStatusAnnulled:
			return ErrSaleAnnulled
		case model.SaleStatusPaid:
			return ErrSaleAlreadyPaid
		}

		total := decimal.Zero
		tenders := make([]model.Tender, 0, len(req.Tenders))
		for _, t := range req.Tenders {
			method, err := model.ParsePaymentMethod(t.Method)
			if err != nil {
				return err
			}
			if method.IsCredit() {
				return ErrCreditTenderNotAllowed
			}
			amount := t.Amount.Round(2)
			if !amount.IsPositive() {
				return ErrInvalidTenderAmount
			}
			total = total.Add(amount)
			tenders = append(tenders, model.Tender{
				SaleID:    sale.ID,
				Method:    method,
				Amount:    amount,
				Reference: t.Reference,
			})
		}
		if total.GreaterThan(sale.Balance) {
			return &PaymentExceedsBalanceError{Tendered: total, Balance: sale.Balance}
		}

		session, err := s.cash.RequireOpenForTx(tx, userID)
		if err != nil {
			return err
		}

		for i := range tenders {
			if err := s.repo.AppendTenderTx(tx, &tenders[i]); err != nil {
				return err
			}
			mov := model.CashMovement{
				SessionID:   session.ID,
				Type:        model.MovementIngress,
				Amount:      tenders[i].Amount,
				Method:      tenders[i].Method,
				Description: "Payment on sale " + sale.Code,
				Category:    "SALE",
				SaleID:      &sale.ID,
				Status:      model.MovementConfirmed,
				CreatedByID: userID,
			}
			if err := s.cashRepo.CreateMovementTx(tx, &mov); err != nil {
				return err
			}
		}

		sale.Paid = sale.Paid.Add(total).Round(2)
		sale.Balance = sale.Total.Sub(sale.Paid).Round(2)
		if sale.Balance.IsNegative() {
			sale.Balance = decimal.Zero
		}

		if sale.Balance.IsZero() {
			sale.Status = model.SaleStatusPaid
		} else if saleHasCreditTender(sale) {
			sale.Status = model.SaleStatusCredit
		} else {
			sale.Status = model.SaleStatusPending
		}

		// A payment reduces the customer's debt even when the original sale
		// was credit-financed.
		if sale.CustomerID != nil {
			if err := s.credit.RefundTx(ctx, tx, *sale.CustomerID, total); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateTx(tx, sale); err != nil {
			return err
		}

		resp = dto.PaySaleResponse{
			SaleID:  sale.ID.String(),
			Paid:    sale.Paid,
			Balance: sale.Balance,
			Status:  sale.Status,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &resp, nil
}

// ── AnnulSale ─────────────────────────────────────────────────────────────────
//
// Compensating action, never a destructive undo: stock is restored, the
// credit portion refunded, and every confirmed movement gets a new movement
// of the opposite direction while the original is flagged ANNULLED. Calling
// it twice fails — double reversal is structurally impossible.

func (s *saleService) AnnulSale(ctx context.Context, userID uuid.UUID, saleID uuid.UUID) (*dto.AnnulSaleResponse, error) {
	var resp dto.AnnulSaleResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		sale, err := s.repo.FindByIDTx(tx, saleID)
		if err != nil {
			return ErrSaleNotFound
		}
		if sale.Status == model.SaleStatusAnnulled {
			return ErrSaleAnnulled
		}

		for _, item := range sale.Items {
			if err := s.inventory.Restore(ctx, tx, item.ProductID, item.Quantity, &sale.ID, "Annulment of sale "+sale.Code); err != nil {
				return err
			}
		}

		creditPortion := decimal.Zero
		for _, t := range sale.Tenders {
			if t.Method.IsCredit() {
				creditPortion = creditPortion.Add(t.Amount)
			}
		}
		if creditPortion.IsPositive() && sale.CustomerID != nil {
			if err := s.credit.RefundTx(ctx, tx, *sale.CustomerID, creditPortion); err != nil {
				return err
			}
		}

		movements, err := s.cashRepo.FindConfirmedBySaleTx(tx, sale.ID)
		if err != nil {
			return err
		}
		if len(movements) > 0 {
			// Reversals post to the caller's open drawer: the refund leaves
			// today's till, and a closed session stays immutable.
			session, err := s.cash.RequireOpenForTx(tx, userID)
			if err != nil {
				return err
			}
			for _, m := range movements {
				if err := s.cashRepo.MarkMovementAnnulledTx(tx, m.ID); err != nil {
					return err
				}
				reversal := model.CashMovement{
					SessionID:   session.ID,
					Type:        oppositeDirection(m.Type),
					Amount:      m.Amount,
					Method:      m.Method,
					Description: fmt.Sprintf("Annulment of sale %s", sale.Code),
					Category:    "ANNULMENT",
					SaleID:      &sale.ID,
					Status:      model.MovementConfirmed,
					CreatedByID: userID,
				}
				if err := s.cashRepo.CreateMovementTx(tx, &reversal); err != nil {
					return err
				}
			}
		}

		sale.Status = model.SaleStatusAnnulled
		sale.Paid = decimal.Zero
		sale.Balance = decimal.Zero
		if err := s.repo.UpdateTx(tx, sale); err != nil {
			return err
		}

		resp = dto.AnnulSaleResponse{SaleID: sale.ID.String(), Status: sale.Status}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &resp, nil
}

// ── Read paths ────────────────────────────────────────────────────────────────

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func saleHasCreditTender(sale *model.Sale) bool {
	for _, t := range sale.Tenders {
		if t.Method.IsCredit() {
			return true
		}
	}
	return false
}

func oppositeDirection(t string) string {
	if t == model.MovementIngress {
		return model.MovementEgress
	}
	return model.MovementIngress
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID: item.ProductID.String(),
			Product:   name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	tenders := make([]dto.TenderResponse, 0, len(sale.Tenders))
	for _, t := range sale.Tenders {
		tenders = append(tenders, dto.TenderResponse{
			Method:    t.Method.String(),
			Amount:    t.Amount,
			Reference: t.Reference,
		})
	}
	resp := &dto.SaleResponse{
		ID:        sale.ID.String(),
		Code:      sale.Code,
		SellerID:  sale.SellerID.String(),
		Items:     items,
		Tenders:   tenders,
		Subtotal:  sale.Subtotal,
		Discount:  sale.Discount,
		Total:     sale.Total,
		Paid:      sale.Paid,
		Balance:   sale.Balance,
		Status:    sale.Status,
		CreatedAt: sale.CreatedAt.UTC().Format(time.RFC3339),
	}
	if sale.CustomerID != nil {
		id := sale.CustomerID.String()
		resp.CustomerID = &id
	}
	return resp
}
