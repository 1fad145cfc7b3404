package registration

import (
	"time"

	regdomain "auction-registration/internal/domain/registration"
)

type CreateInput struct {
	AuctionID string
	UserID    string
	Documents []regdomain.DocumentURL
}

type WithdrawInput struct {
	AuctionID string
	UserID    string
	Reason    string
}

type CheckInInput struct {
	AuctionID string
	UserID    string
}

type RegistrationDTO struct {
	RegistrationID string                   `json:"registration_id"`
	AuctionID      string                   `json:"auction_id"`
	UserID         string                   `json:"user_id"`
	State          regdomain.State          `json:"state"`
	RegisteredAt   time.Time                `json:"registered_at"`
	SubmittedAt    *time.Time               `json:"submitted_at,omitempty"`
	Documents      []regdomain.DocumentURL  `json:"documents,omitempty"`
	VerifiedAt     *time.Time               `json:"documents_verified_at,omitempty"`
	RejectedAt     *time.Time               `json:"documents_rejected_at,omitempty"`
	RejectedReason string                   `json:"documents_rejected_reason,omitempty"`
	DepositPaidAt  *time.Time               `json:"deposit_paid_at,omitempty"`
	DepositAmount  float64                  `json:"deposit_amount,omitempty"`
	ConfirmedAt    *time.Time               `json:"confirmed_at,omitempty"`
	CheckedInAt    *time.Time               `json:"checked_in_at,omitempty"`
	WithdrawnAt    *time.Time               `json:"withdrawn_at,omitempty"`
}

func ToDTO(r *regdomain.Registration) *RegistrationDTO {
	return &RegistrationDTO{
		RegistrationID: r.RegistrationID,
		AuctionID:      r.AuctionID,
		UserID:         r.UserID,
		State:          regdomain.ProjectState(r),
		RegisteredAt:   r.RegisteredAt,
		SubmittedAt:    r.SubmittedAt,
		Documents:      r.DocumentURLs,
		VerifiedAt:     r.DocumentsVerifiedAt,
		RejectedAt:     r.DocumentsRejectedAt,
		RejectedReason: r.DocumentsRejectedReason,
		DepositPaidAt:  r.DepositPaidAt,
		DepositAmount:  r.DepositAmount,
		ConfirmedAt:    r.ConfirmedAt,
		CheckedInAt:    r.CheckedInAt,
		WithdrawnAt:    r.WithdrawnAt,
	}
}
