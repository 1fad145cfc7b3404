package gatewaymock

import (
	"context"
	"errors"

	paydomain "auction-registration/internal/domain/payment"
)

type Gateway struct {
	CreateIntentFunc    func(ctx context.Context, in paydomain.CreateIntentInput) (paydomain.Intent, error)
	GetIntentStatusFunc func(ctx context.Context, paymentID string) (paydomain.IntentState, error)
}

var _ paydomain.Gateway = (*Gateway)(nil)

func (m *Gateway) CreateIntent(ctx context.Context, in paydomain.CreateIntentInput) (paydomain.Intent, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, in)
	}
	return paydomain.Intent{}, errors.New("gatewaymock: CreateIntent not wired")
}

func (m *Gateway) GetIntentStatus(ctx context.Context, paymentID string) (paydomain.IntentState, error) {
	if m.GetIntentStatusFunc != nil {
		return m.GetIntentStatusFunc(ctx, paymentID)
	}
	return paydomain.IntentState{}, errors.New("gatewaymock: GetIntentStatus not wired")
}
