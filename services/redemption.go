package services

import (
	"errors"

	"github.com/fidelity-club/fidelity-be/models"
	"github.com/fidelity-club/fidelity-be/storage"
	"gorm.io/gorm"
)

type RedemptionService struct {
	db      *gorm.DB
	storage storage.Storage
	codes   *CodeGenerator
}

func NewRedemptionService(db *gorm.DB, store storage.Storage, codes *CodeGenerator) *RedemptionService {
	return &RedemptionService{db: db, storage: store, codes: codes}
}

// Redeem exchanges a client's points for a coupon voucher. The debit and
// the redemption insert run in one transaction: if QR issuance or the
// insert fails, the points come back with the rollback.
//
// The full cost_in_points is charged. The per-level discount shown in the
// catalog is advertisement only and is deliberately not applied here.
func (s *RedemptionService) Redeem(userID, couponID uint) (*models.Redemption, error) {
	var redemption models.Redemption

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var coupon models.Coupon
		if err := tx.First(&coupon, couponID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCouponNotFound
			}
			return err
		}

		if !coupon.IsActive {
			return ErrCouponInactive
		}

		var existing int64
		if err := tx.Model(&models.Redemption{}).
			Where("user_id = ? AND coupon_id = ?", userID, couponID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRedeemed
		}

		if user.Points < coupon.CostInPoints {
			return ErrInsufficientPoints
		}

		// Conditional debit: two concurrent redeems by the same user can
		// both pass the read above, but only writers that still find
		// enough points get a row here.
		debit := tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, coupon.CostInPoints).
			Update("points", gorm.Expr("points - ?", coupon.CostInPoints))
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).
			Update("level", models.LevelForPoints(user.Points)).Error; err != nil {
			return err
		}

		redeemCode, err := s.codes.VoucherCode(userID, couponID)
		if err != nil {
			return err
		}
		qrURL, err := s.storage.IssueQR(redeemCode, "qr")
		if err != nil {
			return err
		}

		redemption = models.Redemption{
			UserID:      userID,
			CouponID:    couponID,
			Status:      models.RedemptionPending,
			RedeemCode:  redeemCode,
			QRCodeImage: qrURL,
		}
		if err := tx.Create(&redemption).Error; err != nil {
			// A concurrent redeem of the same pair commits first and we
			// hit the (user_id, coupon_id) unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRedeemed
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &redemption, nil
}

// Use marks a pending voucher as spent. The transition is one-way and
// rejected, not ignored, when the voucher was already used.
func (s *RedemptionService) Use(redemptionID uint) (*models.Redemption, error) {
	var redemption models.Redemption
	if err := s.db.Preload("Coupon").First(&redemption, redemptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRedemptionNotFound
		}
		return nil, err
	}

	// Conditional claim: only the call that flips pending to used wins,
	// any other caller sees zero rows and gets rejected.
	claim := s.db.Model(&models.Redemption{}).
		Where("id = ? AND status = ?", redemptionID, models.RedemptionPending).
		Update("status", models.RedemptionUsed)
	if claim.Error != nil {
		return nil, claim.Error
	}
	if claim.RowsAffected == 0 {
		return nil, ErrAlreadyUsed
	}

	if err := s.db.Preload("Coupon").First(&redemption, redemptionID).Error; err != nil {
		return nil, err
	}
	return &redemption, nil
}

// GetUserRedemptions returns a user's vouchers with their coupons,
// newest-updated first.
func (s *RedemptionService) GetUserRedemptions(userID uint) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := s.db.Preload("Coupon").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&redemptions).Error
	return redemptions, err
}
