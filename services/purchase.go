package services

import (
	"errors"
	"math"
	"time"

	"github.com/fidelity-club/fidelity-be/models"
	"gorm.io/gorm"
)

type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// FindUserByDNI resolves the alternate identity key receptionists work
// with at the counter.
func (s *PurchaseService) FindUserByDNI(dni string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("dni = ?", dni).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RegisterPurchase appends a purchase record and credits the user with
// floor(amount) points in a single transaction, recomputing the loyalty
// level from the new balance. It returns the created purchase together
// with the updated balance and level.
func (s *PurchaseService) RegisterPurchase(userID uint, amountInEuros float64, purchaseDate *time.Time, invoiceNumber, observation string) (*models.Purchase, int, models.Level, error) {
	if amountInEuros < 0 {
		return nil, 0, "", ErrInvalidArgument
	}

	pointsAssigned := int(math.Floor(amountInEuros))

	var purchase models.Purchase
	var points int
	var level models.Level

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		purchase = models.Purchase{
			UserID:         user.ID,
			AmountInEuros:  amountInEuros,
			PointsAssigned: pointsAssigned,
			PurchaseDate:   purchaseDate,
			InvoiceNumber:  invoiceNumber,
			Observation:    observation,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		// Expression-based increment: a balance committed by a concurrent
		// writer between our read and this write is added to, not
		// overwritten.
		if err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("points", gorm.Expr("points + ?", pointsAssigned)).Error; err != nil {
			return err
		}

		if err := tx.First(&user, user.ID).Error; err != nil {
			return err
		}
		points = user.Points
		level = models.LevelForPoints(points)
		return tx.Model(&user).Update("level", level).Error
	})
	if err != nil {
		return nil, 0, "", err
	}

	return &purchase, points, level, nil
}

// GetUserPurchases returns a user's purchase history, newest first.
func (s *PurchaseService) GetUserPurchases(userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
