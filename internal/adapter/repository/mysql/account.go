package mysql

import (
	"context"
	"errors"

	acctdomain "auction-registration/internal/domain/account"
	regdomain "auction-registration/internal/domain/registration"

	"gorm.io/gorm"
)

var _ acctdomain.Repository = (*AccountRepository)(nil)

// AccountRepository is read-only: user profile CRUD belongs to another
// subsystem.
type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*acctdomain.User, error) {
	var out acctdomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, regdomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *AccountRepository) ListStaff(ctx context.Context) ([]acctdomain.User, error) {
	var out []acctdomain.User
	err := r.db.WithContext(ctx).
		Where("role IN ? AND is_deleted = ?", []acctdomain.Role{acctdomain.RoleAdmin, acctdomain.RoleAuctioneer}, false).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
