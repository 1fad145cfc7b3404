package notify

import "context"

// Kind keys the notification template to the transition that fired it.
// Rendering and delivery belong to the external notification service.
type Kind string

const (
	KindDocumentsVerified    Kind = "documents_verified"
	KindDepositPaymentFailed Kind = "deposit_payment_failed"
	KindDepositConfirmed     Kind = "deposit_confirmed"
	KindDepositReceived      Kind = "deposit_received" // staff broadcast
	KindFinalApproval        Kind = "final_approval"
)

type Message struct {
	Kind           Kind
	UserID         string
	RegistrationID string
	AuctionID      string
	// Fields carries template values: retry_url, deadline, amount, reason...
	Fields map[string]string
}

// Notifier is fire-and-forget by contract: implementations must swallow and
// log delivery failures. Usecases call it strictly after commit; a lost
// notification never rolls back a state transition.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}
