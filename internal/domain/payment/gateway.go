package payment

import (
	"context"
	"time"
)

// IntentStatus is the gateway's view of a payment intent.
type IntentStatus string

const (
	IntentPaid      IntentStatus = "paid"
	IntentPending   IntentStatus = "pending"
	IntentFailed    IntentStatus = "failed"
	IntentExpired   IntentStatus = "expired"
	IntentCancelled IntentStatus = "cancelled"
)

type CreateIntentInput struct {
	UserID         string
	AuctionID      string
	RegistrationID string
	Amount         float64
}

// Intent is what the bidder needs to complete the payment out of band.
type Intent struct {
	PaymentID string
	URL       string
	QRCode    string
	BankInfo  string
	Deadline  time.Time
}

// IntentState carries the status poll result. URL is the hosted payment page,
// still valid for a retry while the intent is open.
type IntentState struct {
	Status IntentStatus
	Amount float64
	URL    string
}

// Gateway is the external payment collaborator. Calls must happen outside DB
// transactions; they are the only suspension points besides store I/O.
type Gateway interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (Intent, error)
	GetIntentStatus(ctx context.Context, paymentID string) (IntentState, error)
}
