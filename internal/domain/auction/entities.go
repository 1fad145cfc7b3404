package auction

import (
	"context"
	"time"
)

// Auction is read-only inside the registration subsystem. Scheduling and the
// deposit amount are owned elsewhere (the policy engine computes the amount
// upstream and stores it on the auction).
type Auction struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	AuctionID string `gorm:"column:auction_id;type:char(32);not null;uniqueIndex:ux_auctions_auction_id" json:"auction_id"`
	Title     string `gorm:"column:title;size:255" json:"title"`

	// Registration window: bidders may register/resubmit in [SaleStartAt, SaleEndAt].
	SaleStartAt time.Time `gorm:"column:sale_start_at;not null" json:"sale_start_at"`
	SaleEndAt   time.Time `gorm:"column:sale_end_at;not null" json:"sale_end_at"`

	// Bidding window: withdrawal closes at AuctionStartAt, check-in closes at AuctionEndAt.
	AuctionStartAt time.Time `gorm:"column:auction_start_at;not null" json:"auction_start_at"`
	AuctionEndAt   time.Time `gorm:"column:auction_end_at;not null" json:"auction_end_at"`

	DepositAmount   float64 `gorm:"column:deposit_amount;type:decimal(18,2)" json:"deposit_amount"`
	RequiresDeposit bool    `gorm:"column:requires_deposit;not null" json:"requires_deposit"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Auction) TableName() string { return "auctions" }

// CheckInOpensBefore is how far ahead of the auction start check-in opens.
const CheckInOpensBefore = 24 * time.Hour

// SaleOpen reports whether registration submissions are accepted at t.
func (a *Auction) SaleOpen(t time.Time) bool {
	return !t.Before(a.SaleStartAt) && !t.After(a.SaleEndAt)
}

// CheckInOpen reports whether t falls inside [AuctionStartAt - 24h, AuctionEndAt].
func (a *Auction) CheckInOpen(t time.Time) bool {
	return !t.Before(a.AuctionStartAt.Add(-CheckInOpensBefore)) && !t.After(a.AuctionEndAt)
}

type Repository interface {
	GetByAuctionID(ctx context.Context, auctionID string) (*Auction, error)
}
