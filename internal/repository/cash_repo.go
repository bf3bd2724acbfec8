package repository

import (
	"context"

	"ventapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashRepository interface {
	CreateSession(ctx context.Context, s *model.CashSession) error
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.CashSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	UpdateSession(ctx context.Context, s *model.CashSession) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error)

	// SumMovements returns the signed sum (INGRESO − EGRESO) over ALL
	// movements of a session. Annulled originals and their compensating
	// reversals cancel, so the figure always matches the effective
	// confirmed total.
	SumMovements(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error)

	// In-transaction access for the sale coordinator and the arqueo.
	FindOpenByUserTx(tx *gorm.DB, userID uuid.UUID) (*model.CashSession, error)
	UpdateSessionTx(tx *gorm.DB, s *model.CashSession) error
	CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error
	SumMovementsTx(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error)
	FindConfirmedBySaleTx(tx *gorm.DB, saleID uuid.UUID) ([]model.CashMovement, error)
	MarkMovementAnnulledTx(tx *gorm.DB, movementID uuid.UUID) error

	DB() *gorm.DB
}

type cashRepo struct{ db *gorm.DB }

func NewCashRepository(db *gorm.DB) CashRepository { return &cashRepo{db: db} }

func (r *cashRepo) DB() *gorm.DB { return r.db }

func (r *cashRepo) CreateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashRepo) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).
		Where("opened_by_id = ? AND status = ?", userID, model.SessionOpen).
		First(&s).Error
	return &s, err
}

func (r *cashRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *cashRepo) UpdateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cashRepo) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cashRepo) SumMovements(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.CashMovement{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN -amount ELSE amount END), 0)", model.MovementEgress).
		Where("session_id = ?", sessionID).
		Scan(&sum).Error
	return sum, err
}

func (r *cashRepo) FindOpenByUserTx(tx *gorm.DB, userID uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("opened_by_id = ? AND status = ?", userID, model.SessionOpen).
		First(&s).Error
	return &s, err
}

func (r *cashRepo) UpdateSessionTx(tx *gorm.DB, s *model.CashSession) error {
	return tx.Save(s).Error
}

func (r *cashRepo) CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error {
	return tx.Create(m).Error
}

func (r *cashRepo) SumMovementsTx(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.Model(&model.CashMovement{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN -amount ELSE amount END), 0)", model.MovementEgress).
		Where("session_id = ?", sessionID).
		Scan(&sum).Error
	return sum, err
}

func (r *cashRepo) FindConfirmedBySaleTx(tx *gorm.DB, saleID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := tx.Where("sale_id = ? AND status = ?", saleID, model.MovementConfirmed).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cashRepo) MarkMovementAnnulledTx(tx *gorm.DB, movementID uuid.UUID) error {
	return tx.Model(&model.CashMovement{}).Where("id = ?", movementID).
		Update("status", model.MovementAnnulled).Error
}
