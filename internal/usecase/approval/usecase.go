package approval

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"auction-registration/internal/domain/notify"
	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"
	"auction-registration/internal/infrastructure/metrics"
	regucase "auction-registration/internal/usecase/registration"
	"auction-registration/pkg/requestcontext"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Usecase is the staff-facing review service: verify or reject documents,
// grant final approval, and list registrations. Every operation re-checks the
// caller's staff capability inside the transaction so a mid-flight demotion
// cannot slip through.
type Usecase struct {
	uow      uow.UnitOfWork
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

func NewUsecase(tx uow.UnitOfWork, n notify.Notifier, m *metrics.Metrics) *Usecase {
	return &Usecase{uow: tx, notifier: n, metrics: m}
}

func (u *Usecase) requireStaff(ctx context.Context, r uow.Repos, adminID string) error {
	user, err := r.Users.GetByUserID(ctx, adminID)
	if err != nil {
		if errors.Is(err, regdomain.ErrNotFound) {
			return fmt.Errorf("%w: unknown staff account", regdomain.ErrForbidden)
		}
		return err
	}
	if user.IsDeleted || user.IsBanned || !user.Staff() {
		return fmt.Errorf("%w: staff capability required", regdomain.ErrForbidden)
	}
	return nil
}

func (u *Usecase) VerifyDocuments(ctx context.Context, in VerifyInput) (*regucase.RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)

	var (
		dto             *regucase.RegistrationDTO
		requiresDeposit bool
		depositAmount   float64
	)
	err := u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		if err := u.requireStaff(ctx, r, in.AdminID); err != nil {
			return err
		}
		if reg.SubmittedAt == nil {
			return fmt.Errorf("%w: no documents submitted", regdomain.ErrBadRequest)
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		if reg.ConfirmedAt != nil {
			return fmt.Errorf("%w: registration already confirmed", regdomain.ErrConflict)
		}
		if reg.DocumentsVerifiedAt != nil {
			return fmt.Errorf("%w: documents already verified", regdomain.ErrConflict)
		}

		auc, err := r.Auctions.GetByAuctionID(ctx, reg.AuctionID)
		if err != nil {
			return err
		}
		requiresDeposit = auc.RequiresDeposit
		depositAmount = auc.DepositAmount

		reg.DocumentsVerifiedAt = &now
		reg.DocumentsVerifiedBy = in.AdminID
		// A verify overrides an earlier rejection on the same submission.
		reg.DocumentsRejectedAt = nil
		reg.DocumentsRejectedReason = ""

		if err := r.Registrations.Save(ctx, reg); err != nil {
			return err
		}
		u.metrics.RecordTransition("documents_verified")
		dto = regucase.ToDTO(reg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		fields := map[string]string{}
		if requiresDeposit {
			fields["next_step"] = "pay_deposit"
			fields["deposit_amount"] = strconv.FormatFloat(depositAmount, 'f', 2, 64)
			fields["deadline"] = regdomain.DepositDeadlineFor(now).Format(time.RFC3339)
		} else {
			fields["next_step"] = "await_final_approval"
		}
		u.notifier.Notify(ctx, notify.Message{
			Kind:           notify.KindDocumentsVerified,
			UserID:         dto.UserID,
			RegistrationID: dto.RegistrationID,
			AuctionID:      dto.AuctionID,
			Fields:         fields,
		})
	}
	return dto, nil
}

func (u *Usecase) RejectDocuments(ctx context.Context, in RejectInput) (*regucase.RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", regdomain.ErrBadRequest)
	}
	now := requestcontext.Now(ctx)

	var dto *regucase.RegistrationDTO
	err := u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		if err := u.requireStaff(ctx, r, in.AdminID); err != nil {
			return err
		}
		if reg.SubmittedAt == nil {
			return fmt.Errorf("%w: no documents submitted", regdomain.ErrBadRequest)
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		if reg.ConfirmedAt != nil {
			return fmt.Errorf("%w: registration already confirmed", regdomain.ErrConflict)
		}
		if reg.DepositPaidAt != nil {
			return fmt.Errorf("%w: deposit already paid", regdomain.ErrConflict)
		}
		if reg.DocumentsRejectedAt != nil {
			return fmt.Errorf("%w: documents already rejected", regdomain.ErrConflict)
		}

		reg.DocumentsRejectedAt = &now
		reg.DocumentsRejectedReason = in.Reason
		// A reject overrides an earlier verification on the same submission.
		reg.DocumentsVerifiedAt = nil
		reg.DocumentsVerifiedBy = ""

		if err := r.Registrations.Save(ctx, reg); err != nil {
			return err
		}
		u.metrics.RecordTransition("documents_rejected")
		dto = regucase.ToDTO(reg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) ApproveFinal(ctx context.Context, in ApproveInput) (*regucase.RegistrationDTO, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)

	var dto *regucase.RegistrationDTO
	err := u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		if err := u.requireStaff(ctx, r, in.AdminID); err != nil {
			return err
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		if reg.ConfirmedAt != nil {
			return fmt.Errorf("%w: registration already confirmed", regdomain.ErrConflict)
		}
		if reg.DocumentsVerifiedAt == nil {
			return fmt.Errorf("%w: documents not verified", regdomain.ErrBadRequest)
		}

		auc, err := r.Auctions.GetByAuctionID(ctx, reg.AuctionID)
		if err != nil {
			return err
		}
		if auc.RequiresDeposit && reg.DepositPaidAt == nil {
			return fmt.Errorf("%w: deposit not paid", regdomain.ErrBadRequest)
		}

		reg.ConfirmedAt = &now
		reg.ConfirmedBy = in.AdminID

		if err := r.Registrations.Save(ctx, reg); err != nil {
			return err
		}
		u.metrics.RecordTransition("final_approval")
		dto = regucase.ToDTO(reg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.Notify(ctx, notify.Message{
			Kind:           notify.KindFinalApproval,
			UserID:         dto.UserID,
			RegistrationID: dto.RegistrationID,
			AuctionID:      dto.AuctionID,
		})
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	if u.uow == nil {
		return nil, regdomain.ErrBadRequest
	}
	if in.Bucket == "" {
		in.Bucket = regdomain.BucketAll
	}
	if !in.Bucket.Valid() {
		return nil, fmt.Errorf("%w: unknown status filter %q", regdomain.ErrBadRequest, in.Bucket)
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}

	var out *ListOutput
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := u.requireStaff(ctx, r, in.AdminID); err != nil {
			return err
		}
		rows, total, err := r.Registrations.List(ctx, regdomain.ListFilter{
			AuctionID: in.AuctionID,
			Bucket:    in.Bucket,
			Page:      in.Page,
			PageSize:  in.PageSize,
		})
		if err != nil {
			return err
		}
		items := make([]regucase.RegistrationDTO, 0, len(rows))
		for i := range rows {
			items = append(items, *regucase.ToDTO(&rows[i]))
		}
		out = &ListOutput{Items: items, Total: total, Page: in.Page, PageSize: in.PageSize}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
