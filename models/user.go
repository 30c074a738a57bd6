package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleReceptionist UserRole = "receptionist"
	RoleAdmin        UserRole = "admin"
)

// Level is the loyalty tier, always derived from the point balance via
// LevelForPoints. It is stored for querying but never written
// independently of points.
type Level string

const (
	LevelBlanco   Level = "Blanco"
	LevelSilver   Level = "Silver"
	LevelGold     Level = "Gold"
	LevelPlatinum Level = "Platinum"
)

// LevelForPoints maps an accumulated point balance to its loyalty level.
// Thresholds are inclusive lower bounds, checked highest first.
func LevelForPoints(points int) Level {
	switch {
	case points >= 4000:
		return LevelPlatinum
	case points >= 2000:
		return LevelGold
	case points >= 1000:
		return LevelSilver
	default:
		return LevelBlanco
	}
}

type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	FullName    string         `json:"full_name" gorm:"not null"`
	DNI         string         `json:"dni" gorm:"index"`
	Phone       string         `json:"phone"`
	DateOfBirth *time.Time     `json:"date_of_birth"`
	Address     string         `json:"address"`
	Avatar      string         `json:"avatar"`
	QRCodeImage string         `json:"qr_code_image"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"not null"`
	Role        UserRole       `json:"role" gorm:"default:'client'"`
	Points      int            `json:"points" gorm:"default:0"`
	Level       Level          `json:"level" gorm:"default:'Blanco'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Purchases   []Purchase   `json:"purchases,omitempty"`
	Redemptions []Redemption `json:"redemptions,omitempty"`
}
