package auctionmock

import (
	"context"

	aucdomain "auction-registration/internal/domain/auction"
	regdomain "auction-registration/internal/domain/registration"
)

type Repository struct {
	GetByAuctionIDFunc func(ctx context.Context, auctionID string) (*aucdomain.Auction, error)
}

var _ aucdomain.Repository = (*Repository)(nil)

func (m *Repository) GetByAuctionID(ctx context.Context, auctionID string) (*aucdomain.Auction, error) {
	if m.GetByAuctionIDFunc != nil {
		return m.GetByAuctionIDFunc(ctx, auctionID)
	}
	return nil, regdomain.ErrNotFound
}
