package repository

import (
	"context"
	"fmt"
	"time"

	"ventapos/internal/dto"
	"ventapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)

	// In-transaction access for RecordPayment / AnnulSale.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	AppendTenderTx(tx *gorm.DB, t *model.Tender) error

	// NextCode returns the next date-scoped sale code, e.g. VENTA-20240101-001.
	// The unique index on sales.code is the actual uniqueness guarantee; a
	// collision under concurrency surfaces as a constraint violation and rolls
	// the whole sale back.
	NextCode(tx *gorm.DB, now time.Time) (string, error)

	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Tenders").Preload("Customer").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := tx.Preload("Items").Preload("Tenders").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Model(&model.Sale{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"paid":    s.Paid,
		"balance": s.Balance,
		"status":  s.Status,
	}).Error
}

func (r *saleRepo) AppendTenderTx(tx *gorm.DB, t *model.Tender) error {
	return tx.Create(t).Error
}

func (r *saleRepo) NextCode(tx *gorm.DB, now time.Time) (string, error) {
	day := now.UTC().Format("20060102")
	var count int64
	err := tx.Model(&model.Sale{}).
		Where("code LIKE ?", "VENTA-"+day+"-%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("VENTA-%s-%03d", day, count+1), nil
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Product").Preload("Tenders").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
