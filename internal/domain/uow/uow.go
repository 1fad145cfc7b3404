package uow

import (
	"context"

	"auction-registration/internal/domain/account"
	"auction-registration/internal/domain/auction"
	"auction-registration/internal/domain/payment"
	"auction-registration/internal/domain/registration"
)

type Repos struct {
	Registrations registration.Repository
	Payments      payment.Repository
	Auctions      auction.Repository
	Users         account.Repository
}

// UnitOfWork binds all repositories to one transaction. The registration row
// is the unit of mutual exclusion: every read-decide-write on one row runs
// under WithinRegistrationTx (row lock up front) or locks explicitly via the
// ForUpdate getters inside WithinTx.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinRegistrationTx locks the registration row by public id first,
	// then passes it in.
	WithinRegistrationTx(ctx context.Context, registrationID string, fn func(r Repos, reg *registration.Registration) error) error
}
