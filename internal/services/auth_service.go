package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type authService struct {
	repo     repositories.Repository
	tokens   *auth.TokenService
	identity repositories.IdentityProvider
	logger   *slog.Logger
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenService, identity repositories.IdentityProvider, logger *slog.Logger) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		identity: identity,
		logger:   logger,
	}
}

// IssueToken signs whatever the caller sends. No existence check is made here;
// every protected route re-derives the role from the store.
func (s *authService) IssueToken(claims map[string]interface{}) (string, error) {
	return s.tokens.Issue(claims)
}

func (s *authService) VerifyToken(token string) (map[string]interface{}, error) {
	return s.tokens.Verify(token)
}

// LoginWithCasdoor exchanges an SSO code, registers first-time users as students and issues a token
func (s *authService) LoginWithCasdoor(ctx context.Context, code, state string) (*LoginResult, error) {
	if s.identity == nil {
		return nil, ErrSSODisabled
	}

	profile, err := s.identity.ExchangeCode(ctx, code, state)
	if err != nil {
		s.logger.Warn("SSO login rejected", "error", err)
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, profile.Email)
	switch {
	case err == nil:
	case repositories.IsNotFoundError(err):
		profile.Role = models.RoleStudent
		if _, err := s.repo.User().Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to register sso user: %w", err)
		}
		s.logger.Info("Registered user from SSO", "email", profile.Email)
		user = profile
	default:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	token, err := s.tokens.Issue(map[string]interface{}{
		auth.EmailClaim: user.Email,
		"name":          user.Name,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}
