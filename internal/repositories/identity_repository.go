package repositories

import (
	"context"
	"errors"

	"github.com/atikur-24/daily-fit-server/internal/models"
)

// ErrIdentityRejected is returned when the identity provider refuses a login
var ErrIdentityRejected = errors.New("identity provider rejected the login")

// IdentityProvider resolves an external SSO login into a user profile.
// The returned user carries no role; roles are only assigned locally.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code, state string) (*models.User, error)
}
