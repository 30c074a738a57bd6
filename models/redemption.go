package models

import (
	"time"
)

type RedemptionStatus string

const (
	RedemptionPending RedemptionStatus = "pending"
	RedemptionUsed    RedemptionStatus = "used"
)

// Redemption is the voucher created when a client exchanges points for a
// coupon. A user can redeem a given coupon at most once, ever: the
// composite unique index on (user_id, coupon_id) is what serializes
// concurrent redeems of the same pair.
type Redemption struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_redemptions_user_coupon"`
	User        User             `json:"user,omitempty"`
	CouponID    uint             `json:"coupon_id" gorm:"not null;uniqueIndex:idx_redemptions_user_coupon"`
	Coupon      Coupon           `json:"coupon,omitempty"`
	Status      RedemptionStatus `json:"status" gorm:"default:'pending'"`
	RedeemCode  string           `json:"redeem_code"`
	QRCodeImage string           `json:"qr_code_image"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
