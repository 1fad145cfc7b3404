package notifier

import (
	"context"
	"log"

	"auction-registration/internal/domain/notify"
)

// LogNotifier writes notifications to the process log. It stands in for the
// real notification service; the contract is the same either way: never fail,
// never block the caller's transaction.
type LogNotifier struct{}

var _ notify.Notifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(_ context.Context, msg notify.Message) {
	log.Printf("notify: kind=%s user=%s registration=%s auction=%s fields=%v",
		msg.Kind, msg.UserID, msg.RegistrationID, msg.AuctionID, msg.Fields)
}
