package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type stubIdentity struct {
	user *models.User
	err  error
}

func (s *stubIdentity) ExchangeCode(ctx context.Context, code, state string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.user
	return &cp, nil
}

func TestAuthService_IssueAndVerify(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	svc := NewAuthService(newMemRepository(), tokens, nil, testLogger())

	token, err := svc.IssueToken(map[string]interface{}{"email": "anyone@fit.io"})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "anyone@fit.io", claims["email"])
}

func TestAuthService_LoginWithCasdoor(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenService("secret", time.Hour)

	t.Run("Should register first-time users as students", func(t *testing.T) {
		repo := newMemRepository()
		identity := &stubIdentity{user: &models.User{Name: "Mia", Email: "mia@fit.io"}}
		svc := NewAuthService(repo, tokens, identity, testLogger())

		result, err := svc.LoginWithCasdoor(ctx, "code", "state")
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, result.User.Role)

		claims, err := tokens.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "mia@fit.io", claims["email"])

		exists, _ := repo.User().ExistsByEmail(ctx, "mia@fit.io")
		assert.True(t, exists)
	})

	t.Run("Should keep the stored role of known users", func(t *testing.T) {
		repo := newMemRepository()
		repo.addUser("Ada", "ada@fit.io", models.RoleAdmin)
		identity := &stubIdentity{user: &models.User{Name: "Ada L", Email: "ada@fit.io", Role: models.RoleStudent}}
		svc := NewAuthService(repo, tokens, identity, testLogger())

		result, err := svc.LoginWithCasdoor(ctx, "code", "")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, result.User.Role)
	})

	t.Run("Should report rejected logins", func(t *testing.T) {
		identity := &stubIdentity{err: repositories.ErrIdentityRejected}
		svc := NewAuthService(newMemRepository(), tokens, identity, testLogger())

		_, err := svc.LoginWithCasdoor(ctx, "bad", "")
		assert.ErrorIs(t, err, ErrIdentityRejected)
	})

	t.Run("Should fail when sso is disabled", func(t *testing.T) {
		svc := NewAuthService(newMemRepository(), tokens, nil, testLogger())
		_, err := svc.LoginWithCasdoor(ctx, "code", "")
		assert.ErrorIs(t, err, ErrSSODisabled)
	})
}
