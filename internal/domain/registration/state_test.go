package registration

import (
	"testing"
	"time"
)

var (
	t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func ts(t time.Time) *time.Time { return &t }

func TestProjectState_PriorityOrder(t *testing.T) {
	// Build the row up one tier at a time; each added timestamp must win over
	// everything below it regardless of the order fields were set.
	r := &Registration{}
	if got := ProjectState(r); got != StateUnknown {
		t.Fatalf("empty row: got %s", got)
	}

	r.RegisteredAt = t0
	if got := ProjectState(r); got != StateRegistered {
		t.Fatalf("registered: got %s", got)
	}

	r.SubmittedAt = ts(t0)
	if got := ProjectState(r); got != StatePendingReview {
		t.Fatalf("submitted: got %s", got)
	}

	r.RejectedAt = ts(t0)
	if got := ProjectState(r); got != StateRejected {
		t.Fatalf("legacy rejected: got %s", got)
	}

	r.DocumentsRejectedAt = ts(t0)
	if got := ProjectState(r); got != StateDocumentsRejected {
		t.Fatalf("documents rejected: got %s", got)
	}

	r.DocumentsVerifiedAt = ts(t0)
	if got := ProjectState(r); got != StateDocumentsVerified {
		t.Fatalf("documents verified: got %s", got)
	}

	r.DepositPaidAt = ts(t0)
	if got := ProjectState(r); got != StateDepositPaid {
		t.Fatalf("deposit paid: got %s", got)
	}

	r.ConfirmedAt = ts(t0)
	if got := ProjectState(r); got != StateConfirmed {
		t.Fatalf("confirmed: got %s", got)
	}

	r.WithdrawnAt = ts(t0)
	if got := ProjectState(r); got != StateWithdrawn {
		t.Fatalf("withdrawn: got %s", got)
	}

	r.CheckedInAt = ts(t0)
	if got := ProjectState(r); got != StateCheckedIn {
		t.Fatalf("checked in: got %s", got)
	}
}

func TestProjectState_WithdrawnBeatsConfirmed(t *testing.T) {
	// A bidder can withdraw after final approval; the withdrawal wins.
	r := &Registration{
		RegisteredAt:        t0,
		SubmittedAt:         ts(t0),
		DocumentsVerifiedAt: ts(t0),
		DepositPaidAt:       ts(t0),
		ConfirmedAt:         ts(t0),
		WithdrawnAt:         ts(t1),
	}
	if got := ProjectState(r); got != StateWithdrawn {
		t.Fatalf("got %s, want %s", got, StateWithdrawn)
	}
}

func TestStatusBucket_Valid(t *testing.T) {
	for _, b := range []StatusBucket{BucketAll, BucketPendingReview, BucketConfirmed, BucketRejected, BucketWithdrawn} {
		if !b.Valid() {
			t.Fatalf("%s should be valid", b)
		}
	}
	for _, b := range []StatusBucket{"", "checked_in", "bogus"} {
		if b.Valid() {
			t.Fatalf("%s should be invalid", b)
		}
	}
}

func TestStatusBucket_Matches(t *testing.T) {
	cases := []struct {
		bucket StatusBucket
		want   map[State]bool
	}{
		{BucketPendingReview, map[State]bool{StatePendingReview: true}},
		{BucketConfirmed, map[State]bool{StateConfirmed: true}},
		{BucketRejected, map[State]bool{StateDocumentsRejected: true, StateRejected: true}},
		{BucketWithdrawn, map[State]bool{StateWithdrawn: true}},
	}
	all := []State{
		StateCheckedIn, StateWithdrawn, StateConfirmed, StateDepositPaid,
		StateDocumentsVerified, StateDocumentsRejected, StateRejected,
		StatePendingReview, StateRegistered, StateUnknown,
	}
	for _, c := range cases {
		for _, st := range all {
			if got := c.bucket.Matches(st); got != c.want[st] {
				t.Errorf("bucket %s state %s: got %v want %v", c.bucket, st, got, c.want[st])
			}
			if !BucketAll.Matches(st) {
				t.Errorf("bucket all must match %s", st)
			}
		}
	}
}

func TestDepositOverdue(t *testing.T) {
	verified := t0
	past := verified.Add(DepositDeadline + time.Minute)
	within := verified.Add(DepositDeadline - time.Minute)

	base := func() *Registration {
		return &Registration{
			RegisteredAt:        t0,
			SubmittedAt:         ts(t0),
			DocumentsVerifiedAt: ts(verified),
		}
	}

	if DepositOverdue(base(), within) {
		t.Fatal("not yet past the deadline")
	}
	if !DepositOverdue(base(), past) {
		t.Fatal("past the deadline with no payment")
	}
	if DepositOverdue(base(), verified.Add(DepositDeadline)) {
		t.Fatal("exactly at the deadline is not overdue")
	}

	// Rows that already moved on are never overdue.
	paid := base()
	paid.DepositPaidAt = ts(within)
	if DepositOverdue(paid, past) {
		t.Fatal("paid row must not be overdue")
	}
	withdrawn := base()
	withdrawn.WithdrawnAt = ts(within)
	if DepositOverdue(withdrawn, past) {
		t.Fatal("withdrawn row must not be overdue")
	}
	confirmed := base()
	confirmed.ConfirmedAt = ts(within)
	if DepositOverdue(confirmed, past) {
		t.Fatal("confirmed row must not be overdue")
	}
	checkedIn := base()
	checkedIn.CheckedInAt = ts(within)
	if DepositOverdue(checkedIn, past) {
		t.Fatal("checked-in row must not be overdue")
	}
	unverified := &Registration{RegisteredAt: t0, SubmittedAt: ts(t0)}
	if DepositOverdue(unverified, past) {
		t.Fatal("unverified row must not be overdue")
	}
}

func TestRejectForDepositDeadline(t *testing.T) {
	r := &Registration{
		RegisteredAt:        t0,
		SubmittedAt:         ts(t0),
		DocumentsVerifiedAt: ts(t0),
		DocumentsVerifiedBy: "admin",
	}
	r.RejectForDepositDeadline(t1)

	if r.DocumentsRejectedAt == nil || !r.DocumentsRejectedAt.Equal(t1) {
		t.Fatalf("rejection timestamp not set: %v", r.DocumentsRejectedAt)
	}
	if r.DocumentsRejectedReason != DepositDeadlineExpiredReason {
		t.Fatalf("reason = %q", r.DocumentsRejectedReason)
	}
	if r.DocumentsVerifiedAt != nil || r.DocumentsVerifiedBy != "" {
		t.Fatal("verification must be cleared")
	}
	if got := ProjectState(r); got != StateDocumentsRejected {
		t.Fatalf("state after expiry = %s", got)
	}
}

func TestResubmit_ClearsDecisionsAndReplacesDocs(t *testing.T) {
	r := &Registration{
		RegisteredAt:            t0,
		SubmittedAt:             ts(t0),
		DocumentURLs:            []DocumentURL{{Type: "id_card", URL: "https://cdn.example/old"}},
		DocumentsRejectedAt:     ts(t0),
		DocumentsRejectedReason: "blurry scan",
		RejectedAt:              ts(t0),
		RejectedReason:          "legacy",
		WithdrawnAt:             ts(t0),
		WithdrawalReason:        "changed my mind",
	}
	docs := []DocumentURL{{Type: "id_card", URL: "https://cdn.example/new"}}
	r.Resubmit(docs, t1)

	if r.WithdrawnAt != nil || r.WithdrawalReason != "" {
		t.Fatal("withdrawal must be cleared")
	}
	if r.DocumentsRejectedAt != nil || r.DocumentsRejectedReason != "" {
		t.Fatal("document rejection must be cleared")
	}
	if r.RejectedAt != nil || r.RejectedReason != "" {
		t.Fatal("legacy rejection must be cleared")
	}
	if r.SubmittedAt == nil || !r.SubmittedAt.Equal(t1) {
		t.Fatalf("submitted_at = %v", r.SubmittedAt)
	}
	if len(r.DocumentURLs) != 1 || r.DocumentURLs[0].URL != "https://cdn.example/new" {
		t.Fatalf("documents not replaced: %+v", r.DocumentURLs)
	}
	if !r.RegisteredAt.Equal(t0) {
		t.Fatal("registered_at must not change on resubmission")
	}
	if got := ProjectState(r); got != StatePendingReview {
		t.Fatalf("state after resubmit = %s", got)
	}
}
