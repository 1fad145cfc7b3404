package approval

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	acctdomain "auction-registration/internal/domain/account"
	aucdomain "auction-registration/internal/domain/auction"
	"auction-registration/internal/domain/notify"
	regdomain "auction-registration/internal/domain/registration"
	"auction-registration/internal/domain/uow"
	"auction-registration/internal/testutil/accountmock"
	"auction-registration/internal/testutil/auctionmock"
	"auction-registration/internal/testutil/notifymock"
	"auction-registration/internal/testutil/registrationmock"
	"auction-registration/internal/testutil/uowmock"
	"auction-registration/pkg/requestcontext"
)

var (
	auctionID      = strings.Repeat("a", 32)
	userID         = strings.Repeat("b", 32)
	adminID        = strings.Repeat("c", 32)
	registrationID = strings.Repeat("d", 32)

	now     = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	earlier = now.Add(-2 * time.Hour)
)

func ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

type env struct {
	regs     *registrationmock.Repository
	aucs     *auctionmock.Repository
	users    *accountmock.Repository
	notifier *notifymock.Notifier
	uc       *Usecase
}

func newEnv() *env {
	e := &env{
		regs:     &registrationmock.Repository{},
		aucs:     &auctionmock.Repository{},
		users:    &accountmock.Repository{},
		notifier: &notifymock.Notifier{},
	}
	e.aucs.GetByAuctionIDFunc = func(_ context.Context, _ string) (*aucdomain.Auction, error) {
		return &aucdomain.Auction{AuctionID: auctionID, RequiresDeposit: true, DepositAmount: 500}, nil
	}
	e.users.GetByUserIDFunc = func(_ context.Context, id string) (*acctdomain.User, error) {
		if id == adminID {
			return &acctdomain.User{UserID: adminID, Role: acctdomain.RoleAdmin}, nil
		}
		return &acctdomain.User{UserID: id, Role: acctdomain.RoleBidder}, nil
	}
	e.uc = NewUsecase(&uowmock.UoW{Repos: uow.Repos{
		Registrations: e.regs,
		Auctions:      e.aucs,
		Users:         e.users,
	}}, e.notifier, nil)
	return e
}

func pendingRow() *regdomain.Registration {
	return &regdomain.Registration{
		RegistrationID: registrationID,
		AuctionID:      auctionID,
		UserID:         userID,
		RegisteredAt:   earlier,
		SubmittedAt:    &earlier,
	}
}

func (e *env) stubRow(row *regdomain.Registration) {
	e.regs.GetByRegistrationIDForUpdateFunc = func(_ context.Context, _ string) (*regdomain.Registration, error) {
		return row, nil
	}
}

func TestVerifyDocuments(t *testing.T) {
	t.Run("happy path stamps verification and notifies", func(t *testing.T) {
		e := newEnv()
		row := pendingRow()
		e.stubRow(row)
		var saved *regdomain.Registration
		e.regs.SaveFunc = func(_ context.Context, r *regdomain.Registration) error { saved = r; return nil }

		dto, err := e.uc.VerifyDocuments(ctxAt(now), VerifyInput{RegistrationID: registrationID, AdminID: adminID})
		if err != nil {
			t.Fatalf("VerifyDocuments: %v", err)
		}
		if saved == nil || saved.DocumentsVerifiedAt == nil || !saved.DocumentsVerifiedAt.Equal(now) {
			t.Fatalf("verification not stamped: %+v", saved)
		}
		if saved.DocumentsVerifiedBy != adminID {
			t.Fatalf("verified_by = %q", saved.DocumentsVerifiedBy)
		}
		if dto.State != regdomain.StateDocumentsVerified {
			t.Fatalf("state = %s", dto.State)
		}

		msgs := e.notifier.SentOfKind(notify.KindDocumentsVerified)
		if len(msgs) != 1 {
			t.Fatalf("want 1 notification, got %d", len(msgs))
		}
		if msgs[0].UserID != userID {
			t.Fatalf("notification user = %q", msgs[0].UserID)
		}
		if msgs[0].Fields["next_step"] != "pay_deposit" {
			t.Fatalf("next_step = %q", msgs[0].Fields["next_step"])
		}
		wantDeadline := now.Add(regdomain.DepositDeadline).Format(time.RFC3339)
		if msgs[0].Fields["deadline"] != wantDeadline {
			t.Fatalf("deadline = %q want %q", msgs[0].Fields["deadline"], wantDeadline)
		}
	})

	t.Run("no deposit required changes next step", func(t *testing.T) {
		e := newEnv()
		e.aucs.GetByAuctionIDFunc = func(_ context.Context, _ string) (*aucdomain.Auction, error) {
			return &aucdomain.Auction{AuctionID: auctionID, RequiresDeposit: false}, nil
		}
		e.stubRow(pendingRow())

		_, err := e.uc.VerifyDocuments(ctxAt(now), VerifyInput{RegistrationID: registrationID, AdminID: adminID})
		if err != nil {
			t.Fatalf("VerifyDocuments: %v", err)
		}
		msgs := e.notifier.SentOfKind(notify.KindDocumentsVerified)
		if len(msgs) != 1 || msgs[0].Fields["next_step"] != "await_final_approval" {
			t.Fatalf("unexpected notification: %+v", msgs)
		}
	})

	t.Run("verify overrides earlier rejection", func(t *testing.T) {
		e := newEnv()
		row := pendingRow()
		row.DocumentsRejectedAt = &earlier
		row.DocumentsRejectedReason = "blurry"
		e.stubRow(row)
		var saved *regdomain.Registration
		e.regs.SaveFunc = func(_ context.Context, r *regdomain.Registration) error { saved = r; return nil }

		if _, err := e.uc.VerifyDocuments(ctxAt(now), VerifyInput{RegistrationID: registrationID, AdminID: adminID}); err != nil {
			t.Fatalf("VerifyDocuments: %v", err)
		}
		if saved.DocumentsRejectedAt != nil || saved.DocumentsRejectedReason != "" {
			t.Fatal("rejection must be cleared by verify")
		}
	})

	t.Run("guards", func(t *testing.T) {
		cases := []struct {
			name    string
			mut     func(r *regdomain.Registration)
			wantErr error
		}{
			{"never submitted", func(r *regdomain.Registration) { r.SubmittedAt = nil }, regdomain.ErrBadRequest},
			{"withdrawn", func(r *regdomain.Registration) { r.WithdrawnAt = &earlier }, regdomain.ErrConflict},
			{"already verified", func(r *regdomain.Registration) { r.DocumentsVerifiedAt = &earlier }, regdomain.ErrConflict},
			{"already confirmed", func(r *regdomain.Registration) { r.ConfirmedAt = &earlier }, regdomain.ErrConflict},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				e := newEnv()
				row := pendingRow()
				tc.mut(row)
				e.stubRow(row)
				_, err := e.uc.VerifyDocuments(ctxAt(now), VerifyInput{RegistrationID: registrationID, AdminID: adminID})
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				if len(e.notifier.Sent()) != 0 {
					t.Fatal("no notification on failure")
				}
			})
		}
	})

	t.Run("non-staff forbidden", func(t *testing.T) {
		e := newEnv()
		e.stubRow(pendingRow())
		_, err := e.uc.VerifyDocuments(ctxAt(now), VerifyInput{RegistrationID: registrationID, AdminID: userID})
		if !errors.Is(err, regdomain.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})
}

func TestRejectDocuments(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		e := newEnv()
		row := pendingRow()
		row.DocumentsVerifiedAt = &earlier
		row.DocumentsVerifiedBy = adminID
		e.stubRow(row)
		var saved *regdomain.Registration
		e.regs.SaveFunc = func(_ context.Context, r *regdomain.Registration) error { saved = r; return nil }

		dto, err := e.uc.RejectDocuments(ctxAt(now), RejectInput{RegistrationID: registrationID, AdminID: adminID, Reason: "expired id"})
		if err != nil {
			t.Fatalf("RejectDocuments: %v", err)
		}
		if saved.DocumentsRejectedAt == nil || saved.DocumentsRejectedReason != "expired id" {
			t.Fatalf("rejection not stamped: %+v", saved)
		}
		if saved.DocumentsVerifiedAt != nil || saved.DocumentsVerifiedBy != "" {
			t.Fatal("verification must be cleared by reject")
		}
		if dto.State != regdomain.StateDocumentsRejected {
			t.Fatalf("state = %s", dto.State)
		}
	})

	t.Run("empty reason", func(t *testing.T) {
		e := newEnv()
		_, err := e.uc.RejectDocuments(ctxAt(now), RejectInput{RegistrationID: registrationID, AdminID: adminID})
		if !errors.Is(err, regdomain.ErrBadRequest) {
			t.Fatalf("want ErrBadRequest, got %v", err)
		}
	})

	t.Run("guards", func(t *testing.T) {
		cases := []struct {
			name    string
			mut     func(r *regdomain.Registration)
			wantErr error
		}{
			{"never submitted", func(r *regdomain.Registration) { r.SubmittedAt = nil }, regdomain.ErrBadRequest},
			{"withdrawn", func(r *regdomain.Registration) { r.WithdrawnAt = &earlier }, regdomain.ErrConflict},
			{"confirmed", func(r *regdomain.Registration) { r.ConfirmedAt = &earlier }, regdomain.ErrConflict},
			{"deposit paid", func(r *regdomain.Registration) { r.DepositPaidAt = &earlier }, regdomain.ErrConflict},
			{"already rejected", func(r *regdomain.Registration) { r.DocumentsRejectedAt = &earlier }, regdomain.ErrConflict},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				e := newEnv()
				row := pendingRow()
				tc.mut(row)
				e.stubRow(row)
				_, err := e.uc.RejectDocuments(ctxAt(now), RejectInput{RegistrationID: registrationID, AdminID: adminID, Reason: "nope"})
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
			})
		}
	})
}

func TestApproveFinal(t *testing.T) {
	verifiedPaidRow := func() *regdomain.Registration {
		row := pendingRow()
		row.DocumentsVerifiedAt = &earlier
		row.DepositPaidAt = &earlier
		return row
	}

	t.Run("happy path notifies bidder", func(t *testing.T) {
		e := newEnv()
		e.stubRow(verifiedPaidRow())
		var saved *regdomain.Registration
		e.regs.SaveFunc = func(_ context.Context, r *regdomain.Registration) error { saved = r; return nil }

		dto, err := e.uc.ApproveFinal(ctxAt(now), ApproveInput{RegistrationID: registrationID, AdminID: adminID})
		if err != nil {
			t.Fatalf("ApproveFinal: %v", err)
		}
		if saved.ConfirmedAt == nil || saved.ConfirmedBy != adminID {
			t.Fatalf("confirmation not stamped: %+v", saved)
		}
		if dto.State != regdomain.StateConfirmed {
			t.Fatalf("state = %s", dto.State)
		}
		if len(e.notifier.SentOfKind(notify.KindFinalApproval)) != 1 {
			t.Fatal("final approval notification missing")
		}
	})

	t.Run("no deposit required skips payment gate", func(t *testing.T) {
		e := newEnv()
		e.aucs.GetByAuctionIDFunc = func(_ context.Context, _ string) (*aucdomain.Auction, error) {
			return &aucdomain.Auction{AuctionID: auctionID, RequiresDeposit: false}, nil
		}
		row := pendingRow()
		row.DocumentsVerifiedAt = &earlier
		e.stubRow(row)

		if _, err := e.uc.ApproveFinal(ctxAt(now), ApproveInput{RegistrationID: registrationID, AdminID: adminID}); err != nil {
			t.Fatalf("ApproveFinal: %v", err)
		}
	})

	t.Run("guards", func(t *testing.T) {
		cases := []struct {
			name    string
			row     func() *regdomain.Registration
			wantErr error
		}{
			{"not verified", func() *regdomain.Registration { return pendingRow() }, regdomain.ErrBadRequest},
			{"deposit unpaid", func() *regdomain.Registration {
				row := pendingRow()
				row.DocumentsVerifiedAt = &earlier
				return row
			}, regdomain.ErrBadRequest},
			{"withdrawn", func() *regdomain.Registration {
				row := verifiedPaidRow()
				row.WithdrawnAt = &earlier
				return row
			}, regdomain.ErrConflict},
			{"already confirmed", func() *regdomain.Registration {
				row := verifiedPaidRow()
				row.ConfirmedAt = &earlier
				return row
			}, regdomain.ErrConflict},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				e := newEnv()
				e.stubRow(tc.row())
				_, err := e.uc.ApproveFinal(ctxAt(now), ApproveInput{RegistrationID: registrationID, AdminID: adminID})
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
			})
		}
	})
}

func TestList(t *testing.T) {
	t.Run("invalid bucket", func(t *testing.T) {
		e := newEnv()
		_, err := e.uc.List(ctxAt(now), ListInput{AdminID: adminID, Bucket: "bogus"})
		if !errors.Is(err, regdomain.ErrBadRequest) {
			t.Fatalf("want ErrBadRequest, got %v", err)
		}
	})

	t.Run("defaults and projection", func(t *testing.T) {
		e := newEnv()
		var gotFilter regdomain.ListFilter
		e.regs.ListFunc = func(_ context.Context, f regdomain.ListFilter) ([]regdomain.Registration, int64, error) {
			gotFilter = f
			return []regdomain.Registration{*pendingRow()}, 1, nil
		}

		out, err := e.uc.List(ctxAt(now), ListInput{AdminID: adminID, AuctionID: auctionID})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if gotFilter.Bucket != regdomain.BucketAll || gotFilter.Page != 1 || gotFilter.PageSize != defaultPageSize {
			t.Fatalf("filter defaults: %+v", gotFilter)
		}
		if out.Total != 1 || len(out.Items) != 1 {
			t.Fatalf("out: %+v", out)
		}
		if out.Items[0].State != regdomain.StatePendingReview {
			t.Fatalf("projected state = %s", out.Items[0].State)
		}
	})

	t.Run("page size capped", func(t *testing.T) {
		e := newEnv()
		var gotFilter regdomain.ListFilter
		e.regs.ListFunc = func(_ context.Context, f regdomain.ListFilter) ([]regdomain.Registration, int64, error) {
			gotFilter = f
			return nil, 0, nil
		}
		if _, err := e.uc.List(ctxAt(now), ListInput{AdminID: adminID, PageSize: 10_000}); err != nil {
			t.Fatalf("List: %v", err)
		}
		if gotFilter.PageSize != maxPageSize {
			t.Fatalf("page size = %d", gotFilter.PageSize)
		}
	})

	t.Run("non-staff forbidden", func(t *testing.T) {
		e := newEnv()
		_, err := e.uc.List(ctxAt(now), ListInput{AdminID: userID})
		if !errors.Is(err, regdomain.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})
}
