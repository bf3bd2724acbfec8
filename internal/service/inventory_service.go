package service

import (
	"context"

	"ventapos/internal/model"
	"ventapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventoryService owns the product stock counters. Both operations run
// inside the sale coordinator's transaction so stock changes commit or roll
// back together with the sale itself.
type InventoryService interface {
	// ReserveAndDecrement locks the product row for the rest of the enclosing
	// transaction, verifies availability and decrements stock. Returns the
	// product so the caller snapshots the unit price under the same lock.
	ReserveAndDecrement(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int, saleID *uuid.UUID, reason string) (*model.Product, error)

	// Restore increments stock back on annulment. Best-effort: a product
	// deleted since the sale is logged and skipped, never fatal.
	Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int, saleID *uuid.UUID, reason string) error
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewInventoryService(products repository.ProductRepository, movements repository.StockMovementRepository) InventoryService {
	return &inventoryService{products: products, movements: movements}
}

func (s *inventoryService) ReserveAndDecrement(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int, saleID *uuid.UUID, reason string) (*model.Product, error) {
	p, err := s.products.FindByIDForUpdateTx(tx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}
	if p.Stock < quantity {
		return nil, &OutOfStockError{ProductName: p.Name, Requested: quantity, Available: p.Stock}
	}

	if err := s.products.UpdateStockTx(tx, productID, -quantity); err != nil {
		return nil, err
	}
	if err := s.movements.CreateTx(tx, &model.StockMovement{
		ProductID:   productID,
		Type:        "sale",
		Quantity:    -quantity,
		StockBefore: p.Stock,
		StockAfter:  p.Stock - quantity,
		Reason:      reason,
		SaleID:      saleID,
	}); err != nil {
		return nil, err
	}

	p.Stock -= quantity
	return p, nil
}

func (s *inventoryService) Restore(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int, saleID *uuid.UUID, reason string) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		log.Warn().
			Str("product_id", productID.String()).
			Int("quantity", quantity).
			Msg("annulment: product no longer exists, skipping stock restore")
		return nil
	}

	if err := s.products.UpdateStockTx(tx, productID, quantity); err != nil {
		return err
	}
	return s.movements.CreateTx(tx, &model.StockMovement{
		ProductID:   productID,
		Type:        "annulment_restore",
		Quantity:    quantity,
		StockBefore: p.Stock,
		StockAfter:  p.Stock + quantity,
		Reason:      reason,
		SaleID:      saleID,
	})
}
