package mysql

import (
	"context"

	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"

	"gorm.io/gorm"
)

var _ uow.UnitOfWork = (*GormUoW)(nil)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Registrations: &RegistrationRepository{db: tx},
		Payments:      &PaymentRepository{db: tx},
		Auctions:      &AuctionRepository{db: tx},
		Users:         &AccountRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinRegistrationTx(ctx context.Context, registrationID string, fn func(r uow.Repos, reg *regdomain.Registration) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the registration row up-front to prevent races
		reg, err := r.Registrations.GetByRegistrationIDForUpdate(ctx, registrationID)
		if err != nil {
			return err
		}
		return fn(r, reg)
	})
}
