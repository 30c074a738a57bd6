package services

import (
	"errors"
	"time"

	"github.com/fidelity-club/fidelity-be/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type ClientDashboard struct {
	FullName         string       `json:"full_name"`
	Points           int          `json:"points"`
	Level            models.Level `json:"level"`
	AvailableCoupons int64        `json:"available_coupons"`
}

type ReceptionistDashboard struct {
	DailyPurchases   int64   `json:"daily_purchases"`
	DailyCouponsUsed int64   `json:"daily_coupons_used"`
	DailyTotalEur    float64 `json:"daily_total_eur"`
}

type AdminDashboard struct {
	UsersCount   int64 `json:"users_count"`
	CouponsCount int64 `json:"coupons_count"`
	ReportsCount int   `json:"reports_count"`
}

// todayWindow returns the local calendar day [midnight, midnight+24h).
func todayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func (s *DashboardService) GetClientDashboard(userID uint) (*ClientDashboard, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var activeCoupons int64
	if err := s.db.Model(&models.Coupon{}).
		Where("is_active = ?", true).
		Count(&activeCoupons).Error; err != nil {
		return nil, err
	}

	return &ClientDashboard{
		FullName:         user.FullName,
		Points:           user.Points,
		Level:            user.Level,
		AvailableCoupons: activeCoupons,
	}, nil
}

func (s *DashboardService) GetReceptionistDashboard() (*ReceptionistDashboard, error) {
	today, tomorrow := todayWindow(time.Now())
	stats := &ReceptionistDashboard{}

	if err := s.db.Model(&models.Purchase{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&stats.DailyPurchases).Error; err != nil {
		return nil, err
	}

	// Usage time is tracked by the redemption's update timestamp.
	if err := s.db.Model(&models.Redemption{}).
		Where("status = ? AND updated_at >= ? AND updated_at < ?",
			models.RedemptionUsed, today, tomorrow).
		Count(&stats.DailyCouponsUsed).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Purchase{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Select("COALESCE(SUM(amount_in_euros), 0)").
		Scan(&stats.DailyTotalEur).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *DashboardService) GetAdminDashboard() (*AdminDashboard, error) {
	stats := &AdminDashboard{}

	if err := s.db.Model(&models.User{}).Count(&stats.UsersCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Coupon{}).Count(&stats.CouponsCount).Error; err != nil {
		return nil, err
	}

	// Placeholder until reporting lands; callers should not rely on it.
	stats.ReportsCount = 5

	return stats, nil
}
