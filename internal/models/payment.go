package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentRecord is written once per successful checkout and never updated
type PaymentRecord struct {
	ID            string                      `json:"_id" gorm:"primaryKey;size:36"`
	Email         string                      `json:"email" gorm:"not null;size:255;index"`
	Amount        decimal.Decimal             `json:"amount" gorm:"type:numeric(12,2);not null"`
	ClassRefs     datatypes.JSONSlice[string] `json:"classRefs" gorm:"type:jsonb"`
	TransactionID string                      `json:"transactionId" gorm:"size:255;index"`
	Date          time.Time                   `json:"date" gorm:"not null;index"`

	// Payload is the request body exactly as the client sent it
	Payload datatypes.JSON `json:"payload" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
}

func (PaymentRecord) TableName() string {
	return "payments"
}
