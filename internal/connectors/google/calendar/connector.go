package calendar

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/bindays/internal/connectors/google"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.CalendarConnector = (*Connector)(nil)

// Connector authenticates as a service account and hands out clients for
// the configured calendar.
type Connector struct {
	account domain.ServiceAccount
	config  *Config
	issuer  driven.TokenIssuer
	limiter *google.RateLimiter
}

// NewConnector creates a connector. The rate limiter is shared by every
// client it returns.
func NewConnector(account domain.ServiceAccount, config *Config, issuer driven.TokenIssuer) *Connector {
	return &Connector{
		account: account,
		config:  config,
		issuer:  issuer,
		limiter: google.NewRateLimiter(google.CalendarRateLimit),
	}
}

// Connect acquires an access token and returns a client. The token is
// requested eagerly so authentication failures surface here.
func (c *Connector) Connect(ctx context.Context) (driven.CalendarClient, error) {
	if !c.account.IsConfigured() {
		return nil, fmt.Errorf("%w: service account: %w", domain.ErrAuth, domain.ErrNotConfigured)
	}
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	scopes := []string{domain.CalendarScope}
	cred, err := c.issuer.AccessToken(ctx, c.account, scopes)
	if err != nil {
		return nil, err
	}
	logger.Debug("Obtained access token for %s", c.account.ClientEmail)

	ts := oauth2.ReuseTokenSource(google.CredentialToken(cred),
		google.NewTokenSource(ctx, c.issuer, c.account, scopes))

	svc, err := google.NewCalendarService(ctx, ts, c.config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return NewClient(svc, c.config, c.limiter), nil
}
