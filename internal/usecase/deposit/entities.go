package deposit

import "time"

type InitiateInput struct {
	RegistrationID string
	UserID         string
}

type VerifyInput struct {
	RegistrationID string
	PaymentID      string
	UserID         string
}

// IntentDTO is the gateway handoff returned to the bidder. Everything needed
// to pay out of band, plus the hard deadline.
type IntentDTO struct {
	PaymentID string    `json:"payment_id"`
	Amount    float64   `json:"amount"`
	URL       string    `json:"payment_url,omitempty"`
	QRCode    string    `json:"qr_code,omitempty"`
	BankInfo  string    `json:"bank_info,omitempty"`
	Deadline  time.Time `json:"deadline"`
}

type ConfirmResult struct {
	RegistrationID string    `json:"registration_id"`
	PaymentID      string    `json:"payment_id"`
	Amount         float64   `json:"amount"`
	PaidAt         time.Time `json:"paid_at"`
	State          string    `json:"state"`
}
