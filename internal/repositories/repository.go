package repositories

import "context"

// Repository groups the per-collection repositories behind one store handle.
// It is built once at startup and handed to every service.
type Repository interface {
	User() UserRepository
	Class() ClassRepository
	Cart() CartRepository
	Payment() PaymentRepository
	Review() ReviewRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
