package accountmock

import (
	"context"

	acctdomain "auction-registration/internal/domain/account"
	regdomain "auction-registration/internal/domain/registration"
)

type Repository struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*acctdomain.User, error)
	ListStaffFunc   func(ctx context.Context) ([]acctdomain.User, error)
}

var _ acctdomain.Repository = (*Repository)(nil)

func (m *Repository) GetByUserID(ctx context.Context, userID string) (*acctdomain.User, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, regdomain.ErrNotFound
}

func (m *Repository) ListStaff(ctx context.Context) ([]acctdomain.User, error) {
	if m.ListStaffFunc != nil {
		return m.ListStaffFunc(ctx)
	}
	return nil, nil
}
