package paymentmock

import (
	"context"

	paydomain "auction-registration/internal/domain/payment"
	regdomain "auction-registration/internal/domain/registration"
)

type Repository struct {
	CreateFunc                  func(ctx context.Context, p *paydomain.DepositPayment) error
	SaveFunc                    func(ctx context.Context, p *paydomain.DepositPayment) error
	GetByPaymentIDFunc          func(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error)
	GetByPaymentIDForUpdateFunc func(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error)
}

var _ paydomain.Repository = (*Repository)(nil)

func (m *Repository) Create(ctx context.Context, p *paydomain.DepositPayment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *Repository) Save(ctx context.Context, p *paydomain.DepositPayment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	return nil
}

func (m *Repository) GetByPaymentID(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	return nil, regdomain.ErrNotFound
}

func (m *Repository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paydomain.DepositPayment, error) {
	if m.GetByPaymentIDForUpdateFunc != nil {
		return m.GetByPaymentIDForUpdateFunc(ctx, paymentID)
	}
	return nil, regdomain.ErrNotFound
}
