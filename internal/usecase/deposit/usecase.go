package deposit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	acctdomain "auction-registration/internal/domain/account"
	"auction-registration/internal/domain/notify"
	paydomain "auction-registration/internal/domain/payment"
	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"
	"auction-registration/internal/infrastructure/metrics"
	"auction-registration/pkg/requestcontext"
)

const sweepBatchSize = 200

// Usecase orchestrates the deposit leg of the lifecycle. Gateway calls run
// strictly outside database transactions; every state decision is re-made
// under the registration row lock before a write.
type Usecase struct {
	uow      uow.UnitOfWork
	gateway  paydomain.Gateway
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

func NewUsecase(tx uow.UnitOfWork, gw paydomain.Gateway, n notify.Notifier, m *metrics.Metrics) *Usecase {
	return &Usecase{uow: tx, gateway: gw, notifier: n, metrics: m}
}

// Initiate creates a payment intent at the gateway and records a pending
// payment row. The registration itself is not mutated; only a successful
// verification stamps deposit_paid_at.
func (u *Usecase) Initiate(ctx context.Context, in InitiateInput) (*IntentDTO, error) {
	if u.uow == nil || u.gateway == nil {
		return nil, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)

	var (
		amount    float64
		deadline  time.Time
		auctionID string
	)
	err := u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		if reg.UserID != in.UserID {
			return fmt.Errorf("%w: not your registration", regdomain.ErrForbidden)
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		if reg.DepositPaidAt != nil {
			return fmt.Errorf("%w: deposit already paid", regdomain.ErrConflict)
		}
		if regdomain.DepositOverdue(reg, now) {
			reg.RejectForDepositDeadline(now)
			if err := r.Registrations.Save(ctx, reg); err != nil {
				return err
			}
			u.metrics.RecordTransition("deposit_deadline_expired")
			return fmt.Errorf("%w: %s", regdomain.ErrTerminalRejection, regdomain.DepositDeadlineExpiredReason)
		}
		if reg.DocumentsVerifiedAt == nil {
			return fmt.Errorf("%w: documents not verified", regdomain.ErrBadRequest)
		}

		auc, err := r.Auctions.GetByAuctionID(ctx, reg.AuctionID)
		if err != nil {
			return err
		}
		if !auc.RequiresDeposit {
			return fmt.Errorf("%w: auction does not require a deposit", regdomain.ErrBadRequest)
		}
		amount = auc.DepositAmount
		deadline = regdomain.DepositDeadlineFor(*reg.DocumentsVerifiedAt)
		auctionID = reg.AuctionID
		return nil
	})
	if err != nil {
		return nil, err
	}

	intent, err := u.gateway.CreateIntent(ctx, paydomain.CreateIntentInput{
		UserID:         in.UserID,
		AuctionID:      auctionID,
		RegistrationID: in.RegistrationID,
		Amount:         amount,
	})
	if err != nil {
		u.metrics.RecordGatewayFailure()
		return nil, fmt.Errorf("%w: payment gateway: %v", regdomain.ErrRetryableExternal, err)
	}

	err = u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		// The world may have moved while we talked to the gateway.
		if reg.DepositPaidAt != nil {
			return fmt.Errorf("%w: deposit already paid", regdomain.ErrConflict)
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		return r.Payments.Create(ctx, &paydomain.DepositPayment{
			PaymentID:      intent.PaymentID,
			RegistrationID: reg.RegistrationID,
			AuctionID:      reg.AuctionID,
			UserID:         reg.UserID,
			Amount:         amount,
			Status:         paydomain.StatusPending,
		})
	})
	if err != nil {
		return nil, err
	}
	u.metrics.RecordTransition("deposit_initiated")

	return &IntentDTO{
		PaymentID: intent.PaymentID,
		Amount:    amount,
		URL:       intent.URL,
		QRCode:    intent.QRCode,
		BankInfo:  intent.BankInfo,
		Deadline:  deadline,
	}, nil
}

// VerifyAndConfirm asks the gateway for the intent's terminal status and, if
// paid in full, completes the payment and stamps the registration in one
// transaction. A partial payment is a failure, never a partial success.
func (u *Usecase) VerifyAndConfirm(ctx context.Context, in VerifyInput) (*ConfirmResult, error) {
	if u.uow == nil || u.gateway == nil {
		return nil, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)

	var required float64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		pay, err := r.Payments.GetByPaymentID(ctx, in.PaymentID)
		if err != nil {
			return err
		}
		if pay.UserID != in.UserID {
			return fmt.Errorf("%w: not your payment", regdomain.ErrForbidden)
		}
		if pay.RegistrationID != in.RegistrationID {
			return fmt.Errorf("%w: payment does not belong to this registration", regdomain.ErrBadRequest)
		}
		if pay.Status == paydomain.StatusCompleted {
			return fmt.Errorf("%w: payment already confirmed", regdomain.ErrConflict)
		}
		reg, err := r.Registrations.GetByRegistrationID(ctx, in.RegistrationID)
		if err != nil {
			return err
		}
		if reg.DepositPaidAt != nil {
			return fmt.Errorf("%w: deposit already paid", regdomain.ErrConflict)
		}
		auc, err := r.Auctions.GetByAuctionID(ctx, reg.AuctionID)
		if err != nil {
			return err
		}
		required = auc.DepositAmount
		return nil
	})
	if err != nil {
		return nil, err
	}

	st, err := u.gateway.GetIntentStatus(ctx, in.PaymentID)
	if err != nil {
		u.metrics.RecordGatewayFailure()
		return nil, fmt.Errorf("%w: payment gateway: %v", regdomain.ErrRetryableExternal, err)
	}

	if st.Status == paydomain.IntentPaid && st.Amount >= required {
		return u.confirm(ctx, in, st, now)
	}
	return nil, u.fail(ctx, in, st, required, now)
}

func (u *Usecase) confirm(ctx context.Context, in VerifyInput, st paydomain.IntentState, now time.Time) (*ConfirmResult, error) {
	var (
		out   *ConfirmResult
		staff []acctdomain.User
		auc   string
	)
	err := u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		if reg.DepositPaidAt != nil {
			return fmt.Errorf("%w: deposit already paid", regdomain.ErrConflict)
		}
		if reg.WithdrawnAt != nil {
			return fmt.Errorf("%w: registration withdrawn", regdomain.ErrConflict)
		}
		// The deadline sweep clears verification when it expires a row. The
		// money is at the gateway; the rejection stands and refunds are
		// handled out of band.
		if reg.DocumentsVerifiedAt == nil {
			if reg.DocumentsRejectedAt != nil && reg.DocumentsRejectedReason == regdomain.DepositDeadlineExpiredReason {
				return fmt.Errorf("%w: %s", regdomain.ErrTerminalRejection, regdomain.DepositDeadlineExpiredReason)
			}
			return fmt.Errorf("%w: documents not verified", regdomain.ErrBadRequest)
		}

		pay, err := r.Payments.GetByPaymentIDForUpdate(ctx, in.PaymentID)
		if err != nil {
			return err
		}
		if pay.Status == paydomain.StatusCompleted {
			return fmt.Errorf("%w: payment already confirmed", regdomain.ErrConflict)
		}

		pay.Status = paydomain.StatusCompleted
		pay.CompletedAt = &now
		pay.Amount = st.Amount
		if err := r.Payments.Save(ctx, pay); err != nil {
			return err
		}

		reg.DepositPaidAt = &now
		reg.DepositAmount = st.Amount
		reg.DepositPaymentID = pay.PaymentID
		if err := r.Registrations.Save(ctx, reg); err != nil {
			return err
		}
		u.metrics.RecordTransition("deposit_paid")

		staff, _ = r.Users.ListStaff(ctx)
		auc = reg.AuctionID
		out = &ConfirmResult{
			RegistrationID: reg.RegistrationID,
			PaymentID:      pay.PaymentID,
			Amount:         st.Amount,
			PaidAt:         now,
			State:          string(regdomain.ProjectState(reg)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.Notify(ctx, notify.Message{
			Kind:           notify.KindDepositConfirmed,
			UserID:         in.UserID,
			RegistrationID: in.RegistrationID,
			AuctionID:      auc,
			Fields: map[string]string{
				"amount": strconv.FormatFloat(out.Amount, 'f', 2, 64),
			},
		})
		for i := range staff {
			u.notifier.Notify(ctx, notify.Message{
				Kind:           notify.KindDepositReceived,
				UserID:         staff[i].UserID,
				RegistrationID: in.RegistrationID,
				AuctionID:      auc,
			})
		}
	}
	return out, nil
}

// fail handles every non-success gateway outcome: pending, failed, expired,
// cancelled, and paid-but-short. Past the deadline the rejection is terminal;
// before it the bidder may retry.
func (u *Usecase) fail(ctx context.Context, in VerifyInput, st paydomain.IntentState, required float64, now time.Time) error {
	var (
		terminal bool
		auc      string
		deadline time.Time
	)
	err := u.uow.WithinRegistrationTx(ctx, in.RegistrationID, func(r uow.Repos, reg *regdomain.Registration) error {
		auc = reg.AuctionID
		if reg.DocumentsVerifiedAt != nil {
			deadline = regdomain.DepositDeadlineFor(*reg.DocumentsVerifiedAt)
		}
		// The sweep may have expired the row already; that rejection is just
		// as terminal as one we apply here.
		expired := reg.DocumentsRejectedAt != nil &&
			reg.DocumentsRejectedReason == regdomain.DepositDeadlineExpiredReason
		if !expired {
			if !regdomain.DepositOverdue(reg, now) {
				return nil
			}
			reg.RejectForDepositDeadline(now)
			if err := r.Registrations.Save(ctx, reg); err != nil {
				return err
			}
			u.metrics.RecordTransition("deposit_deadline_expired")
		}
		terminal = true
		pay, err := r.Payments.GetByPaymentIDForUpdate(ctx, in.PaymentID)
		if err != nil {
			return err
		}
		if pay.Status == paydomain.StatusPending {
			pay.Status = paydomain.StatusFailed
			if err := r.Payments.Save(ctx, pay); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if terminal {
		return fmt.Errorf("%w: %s", regdomain.ErrTerminalRejection, regdomain.DepositDeadlineExpiredReason)
	}

	if u.notifier != nil {
		fields := map[string]string{
			"gateway_status":  string(st.Status),
			"required_amount": strconv.FormatFloat(required, 'f', 2, 64),
		}
		if st.Status == paydomain.IntentPaid {
			fields["paid_amount"] = strconv.FormatFloat(st.Amount, 'f', 2, 64)
		}
		if st.URL != "" {
			fields["retry_url"] = st.URL
		}
		if !deadline.IsZero() {
			fields["deadline"] = deadline.Format(time.RFC3339)
		}
		u.notifier.Notify(ctx, notify.Message{
			Kind:           notify.KindDepositPaymentFailed,
			UserID:         in.UserID,
			RegistrationID: in.RegistrationID,
			AuctionID:      auc,
			Fields:         fields,
		})
	}
	if st.Status == paydomain.IntentPaid {
		return fmt.Errorf("%w: partial payment %.2f of %.2f", regdomain.ErrRetryableExternal, st.Amount, required)
	}
	return fmt.Errorf("%w: payment %s", regdomain.ErrRetryableExternal, st.Status)
}

// ExpireOverdueDeposits scans for candidates past the deadline and rejects
// each under its own row lock. The predicate is re-checked per row, so racing
// with a concurrent confirmation is safe; the loser simply skips.
func (u *Usecase) ExpireOverdueDeposits(ctx context.Context) (int, error) {
	if u.uow == nil {
		return 0, regdomain.ErrBadRequest
	}
	now := requestcontext.Now(ctx)
	cutoff := now.Add(-regdomain.DepositDeadline)

	var ids []string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		ids, err = r.Registrations.ListDepositOverdue(ctx, cutoff, sweepBatchSize)
		return err
	})
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, registrationID := range ids {
		err := u.uow.WithinRegistrationTx(ctx, registrationID, func(r uow.Repos, reg *regdomain.Registration) error {
			if !regdomain.DepositOverdue(reg, now) {
				return nil
			}
			reg.RejectForDepositDeadline(now)
			if err := r.Registrations.Save(ctx, reg); err != nil {
				return err
			}
			expired++
			u.metrics.RecordSweepExpiry()
			return nil
		})
		if err != nil {
			return expired, err
		}
	}
	return expired, nil
}
