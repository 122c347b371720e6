package validator

import (
	"github.com/shopspring/decimal"
)

// RegisterUserRequest is the self-registration body. Role is never accepted from clients.
type RegisterUserRequest struct {
	Name  string  `json:"name" validate:"omitempty,max=100"`
	Email string  `json:"email" validate:"required,email,max=255"`
	Photo *string `json:"photo" validate:"omitempty,max=500"`
}

// CreateClassRequest is an instructor's class submission
type CreateClassRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Image          *string         `json:"image" validate:"omitempty,max=500"`
	InstructorName string          `json:"instructorName" validate:"omitempty,max=100"`
	AvailableSeats int             `json:"availableSeats" validate:"min=0"`
	Price          decimal.Decimal `json:"price" validate:"non_negative_price"`
}

type FeedbackRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// AddToCartRequest carries a snapshot of the class being added
type AddToCartRequest struct {
	Email          string          `json:"email" validate:"omitempty,email"`
	ClassID        string          `json:"classId" validate:"required,max=36"`
	Name           string          `json:"name" validate:"omitempty,max=200"`
	Image          *string         `json:"image" validate:"omitempty,max=500"`
	InstructorName string          `json:"instructorName" validate:"omitempty,max=100"`
	Price          decimal.Decimal `json:"price" validate:"non_negative_price"`
}

type PaymentIntentRequest struct {
	Price decimal.Decimal `json:"price" validate:"positive_price"`
}

type CasdoorLoginRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}
