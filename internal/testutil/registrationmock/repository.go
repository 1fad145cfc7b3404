package registrationmock

import (
	"context"
	"time"

	regdomain "auction-registration/internal/domain/registration"
)

// Repository is a function-field mock; unset fields return ErrNotFound or
// no-op so tests only wire what they assert on.
type Repository struct {
	CreateFunc                       func(ctx context.Context, r *regdomain.Registration) error
	SaveFunc                         func(ctx context.Context, r *regdomain.Registration) error
	GetByPairFunc                    func(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error)
	GetByRegistrationIDFunc          func(ctx context.Context, registrationID string) (*regdomain.Registration, error)
	GetByPairForUpdateFunc           func(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error)
	GetByRegistrationIDForUpdateFunc func(ctx context.Context, registrationID string) (*regdomain.Registration, error)
	ListFunc                         func(ctx context.Context, f regdomain.ListFilter) ([]regdomain.Registration, int64, error)
	ListDepositOverdueFunc           func(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}

var _ regdomain.Repository = (*Repository)(nil)

func (m *Repository) Create(ctx context.Context, r *regdomain.Registration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *Repository) Save(ctx context.Context, r *regdomain.Registration) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *Repository) GetByPair(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error) {
	if m.GetByPairFunc != nil {
		return m.GetByPairFunc(ctx, auctionID, userID)
	}
	return nil, regdomain.ErrNotFound
}

func (m *Repository) GetByRegistrationID(ctx context.Context, registrationID string) (*regdomain.Registration, error) {
	if m.GetByRegistrationIDFunc != nil {
		return m.GetByRegistrationIDFunc(ctx, registrationID)
	}
	return nil, regdomain.ErrNotFound
}

func (m *Repository) GetByPairForUpdate(ctx context.Context, auctionID, userID string) (*regdomain.Registration, error) {
	if m.GetByPairForUpdateFunc != nil {
		return m.GetByPairForUpdateFunc(ctx, auctionID, userID)
	}
	return nil, regdomain.ErrNotFound
}

func (m *Repository) GetByRegistrationIDForUpdate(ctx context.Context, registrationID string) (*regdomain.Registration, error) {
	if m.GetByRegistrationIDForUpdateFunc != nil {
		return m.GetByRegistrationIDForUpdateFunc(ctx, registrationID)
	}
	return nil, regdomain.ErrNotFound
}

func (m *Repository) List(ctx context.Context, f regdomain.ListFilter) ([]regdomain.Registration, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *Repository) ListDepositOverdue(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	if m.ListDepositOverdueFunc != nil {
		return m.ListDepositOverdueFunc(ctx, cutoff, limit)
	}
	return nil, nil
}
