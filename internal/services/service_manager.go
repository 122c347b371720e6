package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/events"
	"github.com/atikur-24/daily-fit-server/internal/payment"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

// ServiceManagerConfig carries the external collaborators the services depend on
type ServiceManagerConfig struct {
	Tokens    *auth.TokenService
	Gateway   payment.Gateway
	Publisher events.EventPublisher

	// Identity is nil when SSO is not configured
	Identity repositories.IdentityProvider

	Currency string
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	accessService   AccessService
	authService     AuthService
	userService     UserService
	classService    ClassService
	cartService     CartService
	checkoutService CheckoutService
	reportService   ReportService
	reviewService   ReviewService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize builds every service once
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.config.Tokens == nil {
		return fmt.Errorf("token service is required")
	}
	if sm.config.Gateway == nil {
		return fmt.Errorf("payment gateway is required")
	}

	sm.logger.Info("Initializing service manager")

	sm.accessService = NewAccessService(sm.repo, sm.logger)
	sm.authService = NewAuthService(sm.repo, sm.config.Tokens, sm.config.Identity, sm.logger)
	sm.userService = NewUserService(sm.repo, sm.config.Publisher, sm.logger, sm.validator)
	sm.classService = NewClassService(sm.repo, sm.accessService, sm.config.Publisher, sm.logger, sm.validator)
	sm.cartService = NewCartService(sm.repo, sm.logger, sm.validator)
	sm.checkoutService = NewCheckoutService(sm.repo, sm.config.Gateway, sm.config.Publisher, sm.logger, sm.validator, sm.config.Currency)
	sm.reportService = NewReportService(sm.repo, sm.logger)
	sm.reviewService = NewReviewService(sm.repo)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully", "sso_enabled", sm.config.Identity != nil)

	return nil
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Access() AccessService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.accessService
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.userService
}

func (sm *serviceManager) Class() ClassService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.classService
}

func (sm *serviceManager) Cart() CartService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.cartService
}

func (sm *serviceManager) Checkout() CheckoutService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.checkoutService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.reportService
}

func (sm *serviceManager) Review() ReviewService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.reviewService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

// Shutdown closes the event publisher. The repository is owned and closed by main.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
