package account

import "context"

type Role string

const (
	RoleBidder     Role = "bidder"
	RoleAdmin      Role = "admin"
	RoleAuctioneer Role = "auctioneer"
)

// User is read-only inside the registration subsystem; profile CRUD and
// authentication live elsewhere.
type User struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	UserID    string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	Email     string `gorm:"column:email;size:255" json:"email"`
	Role      Role   `gorm:"column:role;size:32;default:'bidder'" json:"role"`
	IsBanned  bool   `gorm:"column:is_banned;not null" json:"is_banned"`
	IsDeleted bool   `gorm:"column:is_deleted;not null" json:"is_deleted"`
}

func (User) TableName() string { return "users" }

// Staff reports whether the user holds admin or auctioneer capability.
func (u *User) Staff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAuctioneer
}

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// ListStaff returns every non-deleted admin/auctioneer, for the deposit
	// received broadcast.
	ListStaff(ctx context.Context) ([]User, error)
}
