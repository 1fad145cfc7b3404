package registration

import (
	"context"
	"time"
)

// ListFilter drives the admin list endpoint. Page is 1-based.
type ListFilter struct {
	AuctionID string
	Bucket    StatusBucket
	Page      int
	PageSize  int
}

type Repository interface {
	Create(ctx context.Context, r *Registration) error
	Save(ctx context.Context, r *Registration) error

	GetByPair(ctx context.Context, auctionID, userID string) (*Registration, error)
	GetByRegistrationID(ctx context.Context, registrationID string) (*Registration, error)

	// ForUpdate variants lock the row for the duration of the surrounding
	// transaction. Only meaningful when called through the unit of work.
	GetByPairForUpdate(ctx context.Context, auctionID, userID string) (*Registration, error)
	GetByRegistrationIDForUpdate(ctx context.Context, registrationID string) (*Registration, error)

	// List returns one page plus the total row count for the filter.
	List(ctx context.Context, f ListFilter) ([]Registration, int64, error)

	// ListDepositOverdue returns public ids of rows that look expired as of
	// cutoff (documents verified, deposit unpaid, not withdrawn/confirmed/
	// checked in). Callers must re-check DepositOverdue under a row lock
	// before acting; this scan is only a candidate list.
	ListDepositOverdue(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}
