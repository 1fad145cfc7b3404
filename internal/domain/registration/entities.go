package registration

import (
	"time"
)

// DocumentURL is one submitted document. The list is ordered and stored as a
// single JSON column — documents are only ever replaced wholesale on
// (re)submission, never edited in place.
type DocumentURL struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Registration is the single row per (auction_id, user_id) pair. State is
// never stored as its own column; it is derived from the nullable timestamps
// by ProjectState. Rows are never deleted — the timestamps are the audit
// trail.
type Registration struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	RegistrationID string `gorm:"column:registration_id;type:char(32);not null;uniqueIndex:ux_registrations_public_id" json:"registration_id"`
	AuctionID      string `gorm:"column:auction_id;type:char(32);not null;uniqueIndex:ux_registrations_auction_user,priority:1" json:"auction_id"`
	UserID         string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_registrations_auction_user,priority:2" json:"user_id"`

	// Tier 0: submission
	RegisteredAt time.Time     `gorm:"column:registered_at;not null" json:"registered_at"`
	SubmittedAt  *time.Time    `gorm:"column:submitted_at" json:"submitted_at"`
	DocumentURLs []DocumentURL `gorm:"column:document_urls;serializer:json" json:"document_urls"`

	// Tier 1: document review
	DocumentsVerifiedAt     *time.Time `gorm:"column:documents_verified_at;index:idx_registrations_verified_unpaid" json:"documents_verified_at"`
	DocumentsVerifiedBy     string     `gorm:"column:documents_verified_by;type:char(32)" json:"documents_verified_by,omitempty"`
	DocumentsRejectedAt     *time.Time `gorm:"column:documents_rejected_at" json:"documents_rejected_at"`
	DocumentsRejectedReason string     `gorm:"column:documents_rejected_reason;type:text" json:"documents_rejected_reason,omitempty"`

	// Tier 2: deposit
	DepositPaidAt    *time.Time `gorm:"column:deposit_paid_at" json:"deposit_paid_at"`
	DepositAmount    float64    `gorm:"column:deposit_amount;type:decimal(18,2)" json:"deposit_amount"`
	DepositPaymentID string     `gorm:"column:deposit_payment_id;size:64" json:"deposit_payment_id,omitempty"`

	// Final gate
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at"`
	ConfirmedBy string     `gorm:"column:confirmed_by;type:char(32)" json:"confirmed_by,omitempty"`

	// Legacy single-tier rejection. The two-tier flow never writes these;
	// they are kept so pre-migration rows keep classifying correctly.
	RejectedAt     *time.Time `gorm:"column:rejected_at" json:"rejected_at"`
	RejectedReason string     `gorm:"column:rejected_reason;type:text" json:"rejected_reason,omitempty"`

	CheckedInAt      *time.Time `gorm:"column:checked_in_at" json:"checked_in_at"`
	WithdrawnAt      *time.Time `gorm:"column:withdrawn_at" json:"withdrawn_at"`
	WithdrawalReason string     `gorm:"column:withdrawal_reason;type:text" json:"withdrawal_reason,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Registration) TableName() string { return "registrations" }

// DepositDeadlineExpiredReason is the rejection reason written by both the
// lazy deadline check and the sweep. Both paths must stay byte-identical so
// callers can match on it.
const DepositDeadlineExpiredReason = "payment deadline expired"

// DepositDeadline is how long a bidder has to complete the deposit payment
// after documents are verified.
const DepositDeadline = 24 * time.Hour

// DepositDeadlineFor anchors the payment deadline to the verification time.
func DepositDeadlineFor(verifiedAt time.Time) time.Time {
	return verifiedAt.Add(DepositDeadline)
}

// DepositOverdue is the single deadline predicate shared by the lazy check in
// deposit verification and the background sweep. It is false for any row that
// already moved on (paid, rejected, withdrawn, confirmed), which is what makes
// the expiry transition idempotent under races.
func DepositOverdue(r *Registration, now time.Time) bool {
	if r.DocumentsVerifiedAt == nil || r.DepositPaidAt != nil {
		return false
	}
	if r.WithdrawnAt != nil || r.ConfirmedAt != nil || r.CheckedInAt != nil {
		return false
	}
	return now.After(DepositDeadlineFor(*r.DocumentsVerifiedAt))
}

// RejectForDepositDeadline applies the automatic rejection for a missed
// deposit deadline. Verification is cleared so the bidder re-enters the
// document flow on resubmission.
func (r *Registration) RejectForDepositDeadline(now time.Time) {
	r.DocumentsRejectedAt = &now
	r.DocumentsRejectedReason = DepositDeadlineExpiredReason
	r.DocumentsVerifiedAt = nil
	r.DocumentsVerifiedBy = ""
}

// Resubmit re-enters the document review flow: withdrawal and any rejection
// (two-tier or legacy) are cleared, the document list is replaced, and
// submitted_at advances. registered_at is left untouched as audit.
func (r *Registration) Resubmit(docs []DocumentURL, now time.Time) {
	r.WithdrawnAt = nil
	r.WithdrawalReason = ""
	r.DocumentsRejectedAt = nil
	r.DocumentsRejectedReason = ""
	r.RejectedAt = nil
	r.RejectedReason = ""
	r.DocumentURLs = docs
	r.SubmittedAt = &now
}
