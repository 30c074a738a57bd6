package models

import "time"

type Coupon struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Title              string    `json:"title" gorm:"not null"`
	Image              string    `json:"image"`
	CostInPoints       int       `json:"cost_in_points" gorm:"not null"`
	DiscountBlanco     int       `json:"discount_blanco" gorm:"default:0"`
	DiscountSilver     int       `json:"discount_silver" gorm:"default:0"`
	DiscountGold       int       `json:"discount_gold" gorm:"default:0"`
	DiscountPlatinum   int       `json:"discount_platinum" gorm:"default:0"`
	IsHighlighted      bool      `json:"is_highlighted" gorm:"default:false"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	ProductType        string    `json:"product_type"`
	ProductDescription string    `json:"product_description" gorm:"type:text"`
	RedeemCode         string    `json:"redeem_code"`
	CouponImage        string    `json:"coupon_image"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DiscountForLevel returns the discount percentage this coupon grants to
// a given loyalty level. Unknown levels get no discount.
func (c *Coupon) DiscountForLevel(level Level) int {
	switch level {
	case LevelBlanco:
		return c.DiscountBlanco
	case LevelSilver:
		return c.DiscountSilver
	case LevelGold:
		return c.DiscountGold
	case LevelPlatinum:
		return c.DiscountPlatinum
	default:
		return 0
	}
}
