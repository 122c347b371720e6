package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

// fakeAccess resolves roles from a map and counts lookups
type fakeAccess struct {
	mu      sync.Mutex
	users   map[string]*models.User
	lookups int
}

func (f *fakeAccess) find(email string) (*models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	u, ok := f.users[email]
	return u, ok
}

func (f *fakeAccess) RequireRoles(ctx context.Context, email string, roles ...models.UserRole) (*models.User, error) {
	u, ok := f.find(email)
	if !ok {
		return nil, services.NewPermissionError(email, "route", "access", "user is not registered")
	}
	for _, r := range roles {
		if u.EffectiveRole() == r {
			return u, nil
		}
	}
	return nil, services.NewPermissionError(email, "route", "access", "role not allowed")
}

func (f *fakeAccess) HasAnyRole(ctx context.Context, email string, roles ...models.UserRole) (bool, error) {
	_, err := f.RequireRoles(ctx, email, roles...)
	return err == nil, nil
}

func (f *fakeAccess) IsAdmin(ctx context.Context, requesterEmail, email string) (bool, error) {
	if requesterEmail != email {
		return false, nil
	}
	return f.HasAnyRole(ctx, email, models.RoleAdmin)
}

func (f *fakeAccess) IsInstructor(ctx context.Context, requesterEmail, email string) (bool, error) {
	if requesterEmail != email {
		return false, nil
	}
	return f.HasAnyRole(ctx, email, models.RoleInstructor)
}

type fakeCart struct {
	calls int
	items []*models.CartItem
}

func (f *fakeCart) AddToCart(ctx context.Context, requesterEmail string, req *services.AddToCartRequest) (*models.WriteResult, error) {
	f.calls++
	return models.InsertResult("cart-1"), nil
}

func (f *fakeCart) ListCart(ctx context.Context, requesterEmail, targetEmail string) ([]*models.CartItem, error) {
	f.calls++
	if targetEmail != requesterEmail {
		return nil, services.NewPermissionError(requesterEmail, "cart", "read", "cart belongs to another user")
	}
	return f.items, nil
}

func (f *fakeCart) RemoveFromCart(ctx context.Context, requesterEmail, id string) (*models.WriteResult, error) {
	f.calls++
	return models.DeleteResult(1), nil
}

type fakeClass struct {
	services.ClassService
	feedbackErr error
	classes     []*models.Class
}

func (f *fakeClass) ListAll(ctx context.Context) ([]*models.Class, error) {
	return f.classes, nil
}

func (f *fakeClass) ListApproved(ctx context.Context) ([]*models.Class, error) {
	return f.classes, nil
}

func (f *fakeClass) AttachFeedback(ctx context.Context, id string, req *services.FeedbackRequest) (*models.WriteResult, error) {
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return models.UpdateResult(1, 1), nil
}

type fakeUsers struct {
	services.UserService
	existing map[string]bool
}

func (f *fakeUsers) Register(ctx context.Context, req *services.RegisterUserRequest) (*services.RegisterResult, error) {
	if f.existing[req.Email] {
		return &services.RegisterResult{WriteResult: models.InsertResult(""), Existing: true}, nil
	}
	return &services.RegisterResult{WriteResult: models.InsertResult("user-1")}, nil
}

type fakeCheckout struct {
	services.CheckoutService
	intentErr error
}

func (f *fakeCheckout) CreatePaymentIntent(ctx context.Context, req *services.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &models.PaymentIntentResponse{ClientSecret: "pi_secret"}, nil
}

type fakeReport struct{}

func (fakeReport) ExportPayments(ctx context.Context) ([]byte, error) {
	return []byte("xlsx"), nil
}

type fakeReviews struct{}

func (fakeReviews) List(ctx context.Context) ([]*models.Review, error) {
	return []*models.Review{}, nil
}

type fakeServiceManager struct {
	access    *fakeAccess
	auth      services.AuthService
	users     *fakeUsers
	classes   *fakeClass
	cart      *fakeCart
	checkout  *fakeCheckout
	healthErr error
}

func (f *fakeServiceManager) Access() services.AccessService     { return f.access }
func (f *fakeServiceManager) Auth() services.AuthService         { return f.auth }
func (f *fakeServiceManager) User() services.UserService         { return f.users }
func (f *fakeServiceManager) Class() services.ClassService       { return f.classes }
func (f *fakeServiceManager) Cart() services.CartService         { return f.cart }
func (f *fakeServiceManager) Checkout() services.CheckoutService { return f.checkout }
func (f *fakeServiceManager) Report() services.ReportService     { return fakeReport{} }
func (f *fakeServiceManager) Review() services.ReviewService     { return fakeReviews{} }

func (f *fakeServiceManager) Initialize(ctx context.Context) error  { return nil }
func (f *fakeServiceManager) HealthCheck(ctx context.Context) error { return f.healthErr }
func (f *fakeServiceManager) Shutdown(ctx context.Context) error    { return nil }

type testServer struct {
	router *gin.Engine
	sm     *fakeServiceManager
	tokens *auth.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogger)
	tokens := auth.NewTokenService("handler-test-secret", time.Hour)

	sm := &fakeServiceManager{
		access: &fakeAccess{users: map[string]*models.User{
			"admin@fit.io":   {ID: "u-admin", Email: "admin@fit.io", Role: models.RoleAdmin},
			"coach@fit.io":   {ID: "u-coach", Email: "coach@fit.io", Role: models.RoleInstructor},
			"student@fit.io": {ID: "u-student", Email: "student@fit.io", Role: models.RoleStudent},
		}},
		auth:     services.NewAuthService(nil, tokens, nil, slogger),
		users:    &fakeUsers{existing: map[string]bool{"taken@fit.io": true}},
		classes:  &fakeClass{classes: []*models.Class{}},
		cart:     &fakeCart{items: []*models.CartItem{{ID: "cart-1", Email: "student@fit.io", ClassID: "c1"}}},
		checkout: &fakeCheckout{},
	}

	metrics := NewMetrics()
	router := gin.New()
	SetupMiddleware(router, logger, metrics)
	NewHandlerManager(sm, validator.New(), logger, metrics).SetupRoutes(router)

	return &testServer{router: router, sm: sm, tokens: tokens}
}

func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()
	token, err := s.tokens.Issue(map[string]interface{}{auth.EmailClaim: email})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doAs(t *testing.T, method, path, email, body string) *httptest.ResponseRecorder {
	return s.do(method, path, "Bearer "+s.token(t, email), body)
}
