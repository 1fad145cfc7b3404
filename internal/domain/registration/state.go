package registration

// State is the canonical lifecycle label. It is derived, never persisted.
type State string

const (
	StateCheckedIn         State = "checked_in"
	StateWithdrawn         State = "withdrawn"
	StateConfirmed         State = "confirmed"
	StateDepositPaid       State = "deposit_paid"
	StateDocumentsVerified State = "documents_verified"
	StateDocumentsRejected State = "documents_rejected"
	StateRejected          State = "rejected" // legacy single-tier rejection
	StatePendingReview     State = "pending_document_review"
	StateRegistered        State = "registered"
	StateUnknown           State = "unknown"
)

// ProjectState classifies a registration from its non-null timestamps alone,
// in fixed priority order. Every component derives state through this
// function; nothing persists a status column that could drift from the
// timestamps.
func ProjectState(r *Registration) State {
	switch {
	case r.CheckedInAt != nil:
		return StateCheckedIn
	case r.WithdrawnAt != nil:
		return StateWithdrawn
	case r.ConfirmedAt != nil:
		return StateConfirmed
	case r.DepositPaidAt != nil:
		return StateDepositPaid
	case r.DocumentsVerifiedAt != nil:
		return StateDocumentsVerified
	case r.DocumentsRejectedAt != nil:
		return StateDocumentsRejected
	case r.RejectedAt != nil:
		return StateRejected
	case r.SubmittedAt != nil:
		return StatePendingReview
	case !r.RegisteredAt.IsZero():
		return StateRegistered
	default:
		return StateUnknown
	}
}

// StatusBucket is the coarse filter exposed by the admin list endpoint. The
// SQL predicates in the repository must classify exactly like
// ProjectState + Matches; the repository tests enumerate timestamp
// combinations to prove it.
type StatusBucket string

const (
	BucketAll           StatusBucket = "all"
	BucketPendingReview StatusBucket = "pending_review"
	BucketConfirmed     StatusBucket = "confirmed"
	BucketRejected      StatusBucket = "rejected"
	BucketWithdrawn     StatusBucket = "withdrawn"
)

func (b StatusBucket) Valid() bool {
	switch b {
	case BucketAll, BucketPendingReview, BucketConfirmed, BucketRejected, BucketWithdrawn:
		return true
	}
	return false
}

// Matches reports whether a projected state falls into the bucket.
func (b StatusBucket) Matches(st State) bool {
	switch b {
	case BucketAll:
		return true
	case BucketPendingReview:
		return st == StatePendingReview
	case BucketConfirmed:
		return st == StateConfirmed
	case BucketRejected:
		return st == StateDocumentsRejected || st == StateRejected
	case BucketWithdrawn:
		return st == StateWithdrawn
	}
	return false
}
