package services

import (
	"errors"
	"math"

	"github.com/fidelity-club/fidelity-be/models"
	"github.com/fidelity-club/fidelity-be/storage"
	"gorm.io/gorm"
)

type CouponService struct {
	db      *gorm.DB
	storage storage.Storage
	codes   *CodeGenerator
}

func NewCouponService(db *gorm.DB, store storage.Storage, codes *CodeGenerator) *CouponService {
	return &CouponService{db: db, storage: store, codes: codes}
}

// CreateCouponInput carries the admin-provided fields for a new coupon.
// Image is the raw uploaded file, if any.
type CreateCouponInput struct {
	Title              string
	CostInPoints       int
	DiscountBlanco     int
	DiscountSilver     int
	DiscountGold       int
	DiscountPlatinum   int
	IsHighlighted      bool
	ProductType        string
	ProductDescription string
	Image              []byte
	ImageExt           string
}

// UpdateCouponInput is a partial patch: nil fields leave the stored value
// untouched, non-nil fields overwrite it, including with zero values.
type UpdateCouponInput struct {
	Title              *string
	CostInPoints       *int
	DiscountBlanco     *int
	DiscountSilver     *int
	DiscountGold       *int
	DiscountPlatinum   *int
	IsHighlighted      *bool
	IsActive           *bool
	ProductType        *string
	ProductDescription *string
	Image              []byte
	ImageExt           string
}

// CouponFilter narrows List results. Nil means "don't filter on this".
type CouponFilter struct {
	IsActive      *bool
	IsHighlighted *bool
}

// AnnotatedCoupon is the catalog view for clients: the raw coupon plus
// the discount their level grants and the resulting discounted cost.
type AnnotatedCoupon struct {
	models.Coupon
	UserDiscount      int `json:"user_discount"`
	FinalCostInPoints int `json:"final_cost_in_points"`
}

// validDiscount reports whether a per-level discount is a percentage.
func validDiscount(discount int) bool {
	return discount >= 0 && discount <= 100
}

func (s *CouponService) CreateCoupon(input CreateCouponInput) (*models.Coupon, error) {
	if input.Title == "" || input.CostInPoints <= 0 {
		return nil, ErrInvalidArgument
	}
	for _, discount := range []int{input.DiscountBlanco, input.DiscountSilver, input.DiscountGold, input.DiscountPlatinum} {
		if !validDiscount(discount) {
			return nil, ErrInvalidArgument
		}
	}

	redeemCode, err := s.codes.CatalogCode()
	if err != nil {
		return nil, err
	}

	// The catalog QR encodes the coupon's own code; it is informational,
	// distinct from the per-redemption voucher QR.
	couponImage, err := s.storage.IssueQR(redeemCode, "coupons")
	if err != nil {
		return nil, err
	}

	image := couponImage
	if len(input.Image) > 0 {
		image, err = s.storage.Save(input.Image, "coupons", input.ImageExt)
		if err != nil {
			return nil, err
		}
	}

	coupon := models.Coupon{
		Title:              input.Title,
		Image:              image,
		CostInPoints:       input.CostInPoints,
		DiscountBlanco:     input.DiscountBlanco,
		DiscountSilver:     input.DiscountSilver,
		DiscountGold:       input.DiscountGold,
		DiscountPlatinum:   input.DiscountPlatinum,
		IsHighlighted:      input.IsHighlighted,
		IsActive:           true,
		ProductType:        input.ProductType,
		ProductDescription: input.ProductDescription,
		RedeemCode:         redeemCode,
		CouponImage:        couponImage,
	}
	if err := s.db.Create(&coupon).Error; err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (s *CouponService) GetCoupon(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// ListCoupons returns coupons matching the filter, most recently updated
// first.
func (s *CouponService) ListCoupons(filter CouponFilter) ([]models.Coupon, error) {
	query := s.db.Model(&models.Coupon{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsHighlighted != nil {
		query = query.Where("is_highlighted = ?", *filter.IsHighlighted)
	}

	var coupons []models.Coupon
	err := query.Order("updated_at DESC").Find(&coupons).Error
	return coupons, err
}

// AnnotateForLevel decorates each coupon with the discount the given
// level enjoys and the discounted cost. Only client views get this; staff
// see raw records.
func AnnotateForLevel(coupons []models.Coupon, level models.Level) []AnnotatedCoupon {
	annotated := make([]AnnotatedCoupon, 0, len(coupons))
	for _, c := range coupons {
		discount := c.DiscountForLevel(level)
		annotated = append(annotated, AnnotatedCoupon{
			Coupon:            c,
			UserDiscount:      discount,
			FinalCostInPoints: int(math.Floor(float64(c.CostInPoints) * (1 - float64(discount)/100))),
		})
	}
	return annotated
}

func (s *CouponService) UpdateCoupon(id uint, input UpdateCouponInput) (*models.Coupon, error) {
	coupon, err := s.GetCoupon(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrInvalidArgument
		}
		coupon.Title = *input.Title
	}
	if input.CostInPoints != nil {
		if *input.CostInPoints <= 0 {
			return nil, ErrInvalidArgument
		}
		coupon.CostInPoints = *input.CostInPoints
	}
	if input.DiscountBlanco != nil {
		if !validDiscount(*input.DiscountBlanco) {
			return nil, ErrInvalidArgument
		}
		coupon.DiscountBlanco = *input.DiscountBlanco
	}
	if input.DiscountSilver != nil {
		if !validDiscount(*input.DiscountSilver) {
			return nil, ErrInvalidArgument
		}
		coupon.DiscountSilver = *input.DiscountSilver
	}
	if input.DiscountGold != nil {
		if !validDiscount(*input.DiscountGold) {
			return nil, ErrInvalidArgument
		}
		coupon.DiscountGold = *input.DiscountGold
	}
	if input.DiscountPlatinum != nil {
		if !validDiscount(*input.DiscountPlatinum) {
			return nil, ErrInvalidArgument
		}
		coupon.DiscountPlatinum = *input.DiscountPlatinum
	}
	if input.IsHighlighted != nil {
		coupon.IsHighlighted = *input.IsHighlighted
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.ProductType != nil {
		coupon.ProductType = *input.ProductType
	}
	if input.ProductDescription != nil {
		coupon.ProductDescription = *input.ProductDescription
	}
	if len(input.Image) > 0 {
		image, err := s.storage.Save(input.Image, "coupons", input.ImageExt)
		if err != nil {
			return nil, err
		}
		coupon.Image = image
	}
	// The catalog QR is not regenerated on update.

	if err := s.db.Save(coupon).Error; err != nil {
		return nil, err
	}
	return coupon, nil
}

// DeleteCoupon removes a coupon. Deletion is restricted while redemptions
// reference it, so issued vouchers never dangle.
func (s *CouponService) DeleteCoupon(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var coupon models.Coupon
		if err := tx.First(&coupon, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCouponNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.Redemption{}).
			Where("coupon_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrCouponInUse
		}

		return tx.Delete(&coupon).Error
	})
}
