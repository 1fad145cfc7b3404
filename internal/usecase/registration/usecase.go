package registration

import (
	"context"
	"errors"
	"fmt"

	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"
	"auction-registration/internal/infrastructure/metrics"
	"auction-registration/pkg/id"
	"auction-registration/pkg/requestcontext"
)

// Usecase is the bidder-facing command service: create/resubmit, withdraw,
// check in. Every branch decision happens against a row read (and locked)
// inside the same transaction that performs the write.
type Usecase struct {
	uow     uow.UnitOfWork
	metrics *metrics.Metrics
}

func NewUsecase(tx uow.UnitOfWork, m *metrics.Metrics) *Usecase {
	return &Usecase{uow: tx, metrics: m}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	if len(in.Documents) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", regdomain.ErrBadRequest)
	}
	now := requestcontext.Now(ctx)

	var dto *RegistrationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		user, err := r.Users.GetByUserID(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, regdomain.ErrNotFound) {
				return fmt.Errorf("%w: user %s", regdomain.ErrNotFound, in.UserID)
			}
			return err
		}
		if user.IsBanned || user.IsDeleted {
			return fmt.Errorf("%w: user may not register", regdomain.ErrForbidden)
		}

		auc, err := r.Auctions.GetByAuctionID(ctx, in.AuctionID)
		if err != nil {
			if errors.Is(err, regdomain.ErrNotFound) {
				return fmt.Errorf("%w: auction %s", regdomain.ErrNotFound, in.AuctionID)
			}
			return err
		}
		if !auc.SaleOpen(now) {
			return fmt.Errorf("%w: registration window is closed", regdomain.ErrForbidden)
		}

		existing, err := r.Registrations.GetByPairForUpdate(ctx, in.AuctionID, in.UserID)
		if errors.Is(err, regdomain.ErrNotFound) {
			reg := &regdomain.Registration{
				RegistrationID: id.NewID32(),
				AuctionID:      in.AuctionID,
				UserID:         in.UserID,
				RegisteredAt:   now,
				SubmittedAt:    &now,
				DocumentURLs:   in.Documents,
			}
			// Two concurrent creates can both miss the row; the unique
			// index on (auction_id, user_id) picks the winner and Create
			// maps the loser to ErrConflict.
			if err := r.Registrations.Create(ctx, reg); err != nil {
				return err
			}
			u.metrics.RecordTransition("registration_created")
			dto = ToDTO(reg)
			return nil
		}
		if err != nil {
			return err
		}

		switch st := regdomain.ProjectState(existing); st {
		case regdomain.StateWithdrawn, regdomain.StateDocumentsRejected, regdomain.StateRejected, regdomain.StateRegistered:
			existing.Resubmit(in.Documents, now)
		case regdomain.StatePendingReview:
			return fmt.Errorf("%w: document review is outstanding", regdomain.ErrConflict)
		case regdomain.StateConfirmed:
			return fmt.Errorf("%w: registration already confirmed", regdomain.ErrConflict)
		default:
			return fmt.Errorf("%w: registration is %s", regdomain.ErrConflict, st)
		}

		if err := r.Registrations.Save(ctx, existing); err != nil {
			return err
		}
		u.metrics.RecordTransition("registration_resubmitted")
		dto = ToDTO(existing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)

	var dto *RegistrationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		reg, err := r.Registrations.GetByPairForUpdate(ctx, in.AuctionID, in.UserID)
		if err != nil {
			return err
		}
		auc, err := r.Auctions.GetByAuctionID(ctx, in.AuctionID)
		if err != nil {
			return err
		}

		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: already withdrawn", regdomain.ErrConflict)
		}
		if reg.CheckedInAt != nil {
			return fmt.Errorf("%w: already checked in", regdomain.ErrForbidden)
		}
		// Withdrawal stays open right up to auction start, even after final
		// confirmation.
		if !now.Before(auc.AuctionStartAt) {
			return fmt.Errorf("%w: auction has started", regdomain.ErrForbidden)
		}

		reg.WithdrawnAt = &now
		reg.WithdrawalReason = in.Reason
		if err := r.Registrations.Save(ctx, reg); err != nil {
			return err
		}
		u.metrics.RecordTransition("registration_withdrawn")
		dto = ToDTO(reg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) CheckIn(ctx context.Context, in CheckInInput) (*RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)

	var dto *RegistrationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		reg, err := r.Registrations.GetByPairForUpdate(ctx, in.AuctionID, in.UserID)
		if err != nil {
			return err
		}
		auc, err := r.Auctions.GetByAuctionID(ctx, in.AuctionID)
		if err != nil {
			return err
		}

		if reg.CheckedInAt != nil {
			return fmt.Errorf("%w: already checked in", regdomain.ErrConflict)
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		if reg.RejectedAt != nil {
			return fmt.Errorf("%w: registration rejected", regdomain.ErrForbidden)
		}
		if reg.ConfirmedAt == nil {
			return fmt.Errorf("%w: registration not confirmed", regdomain.ErrBadRequest)
		}
		if !auc.CheckInOpen(now) {
			return fmt.Errorf("%w: outside check-in window", regdomain.ErrForbidden)
		}

		reg.CheckedInAt = &now
		if err := r.Registrations.Save(ctx, reg); err != nil {
			return err
		}
		u.metrics.RecordTransition("registration_checked_in")
		dto = ToDTO(reg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns the caller's own registration with its projected state.
func (u *Usecase) Get(ctx context.Context, auctionID, userID string) (*RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	var dto *RegistrationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		reg, err := r.Registrations.GetByPair(ctx, auctionID, userID)
		if err != nil {
			return err
		}
		dto = ToDTO(reg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
