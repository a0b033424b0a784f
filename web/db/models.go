package db

import (
	"gorm.io/gorm"
)

// Order is one payment attempt: written when a session enters pay, updated on
// expiry or cancel. The external reconciliation backend matches incoming
// transfers against pending rows; confirmation tracking is not done here.
type Order struct {
	gorm.Model
	OrderID   string `gorm:"uniqueIndex"`
	SessionID string

	Product string
	PlanID  string
	Email   string

	Method string
	Chain  string

	Address       string
	LockedAmount  string // decimal string, display precision preserved
	PriceUSDCents int

	Status string // pending, expired, cancelled
}

const (
	StatusPending   = "pending"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)
