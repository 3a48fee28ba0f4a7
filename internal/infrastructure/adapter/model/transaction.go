package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction represents the database model for payment transactions.
// The partial unique index on authority is created by the migration manager.
type Transaction struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	UserID          uint64          `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TransactionType string          `gorm:"type:varchar(16);not null;default:credit"`
	PaymentStatus   string          `gorm:"type:varchar(16);not null;default:pending;index"`
	Gateway         string          `gorm:"type:varchar(32);not null"`
	Authority       *string         `gorm:"type:varchar(255)"`
	ReferenceID     *string         `gorm:"type:varchar(255)"`
	Description     string          `gorm:"type:varchar(191)"`
	CallbackURL     string          `gorm:"type:varchar(512)"`
	Meta            datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
