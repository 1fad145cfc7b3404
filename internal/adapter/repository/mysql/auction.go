package mysql

import (
	"context"
	"errors"

	aucdomain "auction-registration/internal/domain/auction"
	regdomain "auction-registration/internal/domain/registration"

	"gorm.io/gorm"
)

var _ aucdomain.Repository = (*AuctionRepository)(nil)

// AuctionRepository is read-only: auction scheduling belongs to another
// subsystem.
type AuctionRepository struct{ db *gorm.DB }

func NewAuctionRepository(db *gorm.DB) *AuctionRepository { return &AuctionRepository{db: db} }

func (r *AuctionRepository) GetByAuctionID(ctx context.Context, auctionID string) (*aucdomain.Auction, error) {
	var out aucdomain.Auction
	res := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, regdomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
