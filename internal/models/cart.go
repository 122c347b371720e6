package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one student's unpaid selection of one class
type CartItem struct {
	ID      string `json:"_id" gorm:"primaryKey;size:36"`
	Email   string `json:"email" gorm:"not null;size:255;index"`
	ClassID string `json:"classId" gorm:"not null;size:36;index"`

	// Snapshot of the class at the time it was added
	Name           string          `json:"name" gorm:"size:200"`
	Image          *string         `json:"image,omitempty" gorm:"size:500"`
	InstructorName string          `json:"instructorName" gorm:"size:100"`
	Price          decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `json:"createdAt"`
}

func (CartItem) TableName() string {
	return "carts"
}
