package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

type Class struct {
	ID    string  `json:"_id" gorm:"primaryKey;size:36"`
	Name  string  `json:"name" gorm:"not null;size:200"`
	Image *string `json:"image,omitempty" gorm:"size:500"`

	// Instructor reference
	InstructorName  string `json:"instructorName" gorm:"size:100"`
	InstructorEmail string `json:"email" gorm:"not null;size:255;index"`

	AvailableSeats int             `json:"availableSeats" gorm:"not null;default:0"`
	Enrolled       int             `json:"enrolled" gorm:"not null;default:0"`
	Price          decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`

	Status   ClassStatus `json:"status" gorm:"not null;size:20;default:pending;index"`
	Feedback *string     `json:"feedback,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Class) TableName() string {
	return "classes"
}
