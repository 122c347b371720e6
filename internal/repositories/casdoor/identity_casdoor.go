package casdoor

import (
	"context"
	"fmt"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/atikur-24/daily-fit-server/internal/config"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type IdentityCasdoor struct {
	exchange func(code, state string) (string, error)
	parse    func(token string) (*casdoorsdk.Claims, error)
}

func NewIdentityCasdoor(cfg config.CasdoorConfig) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &IdentityCasdoor{
		exchange: func(code, state string) (string, error) {
			token, err := client.GetOAuthToken(code, state)
			if err != nil {
				return "", err
			}
			return token.AccessToken, nil
		},
		parse: client.ParseJwtToken,
	}
}

// ExchangeCode trades an authorization code for the Casdoor profile behind it
func (p *IdentityCasdoor) ExchangeCode(ctx context.Context, code, state string) (*models.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: missing authorization code", repositories.ErrIdentityRejected)
	}

	accessToken, err := p.exchange(code, state)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrIdentityRejected, err)
	}

	claims, err := p.parse(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrIdentityRejected, err)
	}

	return convertClaimsToUser(claims)
}

func convertClaimsToUser(claims *casdoorsdk.Claims) (*models.User, error) {
	if claims == nil || strings.TrimSpace(claims.Email) == "" {
		return nil, fmt.Errorf("%w: token carries no email", repositories.ErrIdentityRejected)
	}

	name := claims.DisplayName
	if name == "" {
		name = claims.Name
	}

	user := &models.User{
		Name:  name,
		Email: strings.TrimSpace(claims.Email),
	}
	if claims.Avatar != "" {
		avatar := claims.Avatar
		user.Photo = &avatar
	}

	return user, nil
}
