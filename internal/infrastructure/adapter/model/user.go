package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the wallet columns of the users table
type User struct {
	ID            uint64          `gorm:"primaryKey"`
	CreditBalance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	RemainingTime uint            `gorm:"not null;default:0"`
	IsAdmin       bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
