package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// TokenSourceAdapter adapts a driven.TokenIssuer to oauth2.TokenSource.
// This allows Google API clients to request tokens for the service account.
type TokenSourceAdapter struct {
	issuer  driven.TokenIssuer
	account domain.ServiceAccount
	scopes  []string
	ctx     context.Context
}

// NewTokenSource creates an oauth2.TokenSource that issues a fresh token on
// every call. Wrap it with oauth2.ReuseTokenSource to cache until expiry.
func NewTokenSource(
	ctx context.Context,
	issuer driven.TokenIssuer,
	account domain.ServiceAccount,
	scopes []string,
) oauth2.TokenSource {
	return &TokenSourceAdapter{
		issuer:  issuer,
		account: account,
		scopes:  scopes,
		ctx:     ctx,
	}
}

// Token implements oauth2.TokenSource interface.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	cred, err := t.issuer.AccessToken(t.ctx, t.account, t.scopes)
	if err != nil {
		return nil, err
	}
	return CredentialToken(cred), nil
}

// CredentialToken converts an access credential to an oauth2.Token.
func CredentialToken(cred *domain.AccessCredential) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: cred.AccessToken,
		TokenType:   cred.TokenType,
		Expiry:      cred.Expiry,
	}
}
