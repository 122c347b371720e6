package services

import (
	"context"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

// ===== REQUEST DTOs =====

type RegisterUserRequest = validator.RegisterUserRequest
type CreateClassRequest = validator.CreateClassRequest
type FeedbackRequest = validator.FeedbackRequest
type AddToCartRequest = validator.AddToCartRequest
type PaymentIntentRequest = validator.PaymentIntentRequest

// ===== RESPONSE DTOs =====

type RegisterResult struct {
	*models.WriteResult
	Existing bool `json:"-"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ===== SERVICE INTERFACES =====

// AccessService derives roles from stored users and authorizes actions
type AccessService interface {
	// RequireRoles loads the user behind email and fails unless its role is in roles
	RequireRoles(ctx context.Context, email string, roles ...models.UserRole) (*models.User, error)
	HasAnyRole(ctx context.Context, email string, roles ...models.UserRole) (bool, error)

	// IsAdmin and IsInstructor answer only about the requester itself
	IsAdmin(ctx context.Context, requesterEmail, email string) (bool, error)
	IsInstructor(ctx context.Context, requesterEmail, email string) (bool, error)
}

type AuthService interface {
	IssueToken(claims map[string]interface{}) (string, error)
	VerifyToken(token string) (map[string]interface{}, error)
	LoginWithCasdoor(ctx context.Context, code, state string) (*LoginResult, error)
}

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*RegisterResult, error)
	List(ctx context.Context) ([]*models.User, error)
	ListInstructors(ctx context.Context) ([]*models.User, error)
	SetRole(ctx context.Context, id string, role models.UserRole) (*models.WriteResult, error)
	Delete(ctx context.Context, id string) (*models.WriteResult, error)
}

type ClassService interface {
	Submit(ctx context.Context, instructor *models.User, req *CreateClassRequest) (*models.WriteResult, error)
	Approve(ctx context.Context, id string) (*models.WriteResult, error)
	Deny(ctx context.Context, id string) (*models.WriteResult, error)
	AttachFeedback(ctx context.Context, id string, req *FeedbackRequest) (*models.WriteResult, error)
	ListAll(ctx context.Context) ([]*models.Class, error)
	ListApproved(ctx context.Context) ([]*models.Class, error)
	ListByInstructor(ctx context.Context, requesterEmail, email string) ([]*models.Class, error)
	Remove(ctx context.Context, id string) (*models.WriteResult, error)
}

type CartService interface {
	AddToCart(ctx context.Context, requesterEmail string, req *AddToCartRequest) (*models.WriteResult, error)
	ListCart(ctx context.Context, requesterEmail, targetEmail string) ([]*models.CartItem, error)
	RemoveFromCart(ctx context.Context, requesterEmail, id string) (*models.WriteResult, error)
}

type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*models.PaymentIntentResponse, error)

	// RecordPayment stores the raw JSON payload verbatim alongside the extracted fields
	RecordPayment(ctx context.Context, requesterEmail string, payload []byte) (*models.WriteResult, error)
	ListPayments(ctx context.Context, requesterEmail, email string) ([]*models.PaymentRecord, error)
}

type ReportService interface {
	ExportPayments(ctx context.Context) ([]byte, error)
}

type ReviewService interface {
	List(ctx context.Context) ([]*models.Review, error)
}

// ServiceManager manages all service instances and their dependencies
type ServiceManager interface {
	Access() AccessService
	Auth() AuthService
	User() UserService
	Class() ClassService
	Cart() CartService
	Checkout() CheckoutService
	Report() ReportService
	Review() ReviewService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
