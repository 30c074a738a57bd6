package models

import (
	"time"
)

// Purchase is an append-only record of a sale registered at reception.
// Rows are never updated or deleted once created.
type Purchase struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	User           User       `json:"user,omitempty"`
	AmountInEuros  float64    `json:"amount_in_euros" gorm:"not null"`
	PointsAssigned int        `json:"points_assigned" gorm:"not null"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	InvoiceNumber  string     `json:"invoice_number"`
	Observation    string     `json:"observation" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
