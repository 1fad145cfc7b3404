package payment

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// DepositPayment is the local record of one gateway payment intent. A row is
// created when the intent is created; it flips to completed in the same
// transaction that stamps deposit_paid_at on the registration, so the two are
// never observable independently.
type DepositPayment struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	PaymentID      string     `gorm:"column:payment_id;size:64;not null;uniqueIndex:ux_deposit_payments_payment_id" json:"payment_id"`
	RegistrationID string     `gorm:"column:registration_id;type:char(32);not null;index:idx_deposit_payments_registration" json:"registration_id"`
	AuctionID      string     `gorm:"column:auction_id;type:char(32);not null" json:"auction_id"`
	UserID         string     `gorm:"column:user_id;type:char(32);not null" json:"user_id"`
	Amount         float64    `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Status         Status     `gorm:"column:status;size:16;not null;default:'pending'" json:"status"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DepositPayment) TableName() string { return "deposit_payments" }

type Repository interface {
	Create(ctx context.Context, p *DepositPayment) error
	Save(ctx context.Context, p *DepositPayment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*DepositPayment, error)
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*DepositPayment, error)
}
