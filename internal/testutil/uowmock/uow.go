package uowmock

import (
	"context"

	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"
)

// UoW runs transaction bodies directly against whatever repos the test wires
// in. There is no rollback: usecase tests assert on guard errors, not on
// transactional atomicity (the gorm unit of work covers that).
type UoW struct {
	Repos uow.Repos
}

var _ uow.UnitOfWork = (*UoW)(nil)

func (u *UoW) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(u.Repos)
}

func (u *UoW) WithinRegistrationTx(ctx context.Context, registrationID string, fn func(r uow.Repos, reg *regdomain.Registration) error) error {
	reg, err := u.Repos.Registrations.GetByRegistrationIDForUpdate(ctx, registrationID)
	if err != nil {
		return err
	}
	return fn(u.Repos, reg)
}
