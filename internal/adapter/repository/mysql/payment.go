package mysql

import (
	"context"
	"errors"

	paydomain "auction-registration/internal/domain/payment"
	regdomain "auction-registration/internal/domain/registration"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ paydomain.Repository = (*PaymentRepository)(nil)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paydomain.DepositPayment) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return regdomain.ErrConflict
	}
	return err
}

func (r *PaymentRepository) Save(ctx context.Context, p *paydomain.DepositPayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error) {
	return r.first(r.db.WithContext(ctx), paymentID)
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), paymentID)
}

func (r *PaymentRepository) first(tx *gorm.DB, paymentID string) (*paydomain.DepositPayment, error) {
	var out paydomain.DepositPayment
	res := tx.Where("payment_id = ?", paymentID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, regdomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
