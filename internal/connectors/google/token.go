package google

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/jws"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// Ensure TokenIssuer implements the interface.
var _ driven.TokenIssuer = (*TokenIssuer)(nil)

// TokenURL is the OAuth2 endpoint service account assertions are exchanged at.
// It is also the assertion audience.
const TokenURL = "https://oauth2.googleapis.com/token"

const (
	jwtBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime = time.Hour
	maxErrorBody      = 4 << 10
	exchangeTimeout   = 30 * time.Second
)

// Signer produces the RS256 signature over a JWT signing input.
type Signer interface {
	Sign(account domain.ServiceAccount, signingInput []byte) ([]byte, error)
}

// RSASigner signs with the service account's PEM encoded RSA key.
type RSASigner struct{}

// Sign implements Signer.
func (RSASigner) Sign(account domain.ServiceAccount, signingInput []byte) ([]byte, error) {
	key, err := ParsePrivateKey(account.PrivateKey)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(signingInput)
	return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, sum[:])
}

// ParsePrivateKey decodes a PEM encoded PKCS#8 or PKCS#1 RSA key.
func ParsePrivateKey(pemKey string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New("private key is not PEM encoded")
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not an RSA key")
		}
		return key, nil
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// TokenIssuerConfig configures a TokenIssuer. Zero values select defaults.
type TokenIssuerConfig struct {
	// TokenURL is the exchange endpoint. Defaults to TokenURL.
	TokenURL string
	// HTTPClient performs the exchange. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Signer signs assertions. Defaults to RSASigner.
	Signer Signer
}

// TokenIssuer exchanges signed service account assertions for bearer tokens
// using the JWT bearer grant.
type TokenIssuer struct {
	tokenURL string
	client   *http.Client
	signer   Signer
	now      func() time.Time
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(cfg TokenIssuerConfig) *TokenIssuer {
	issuer := &TokenIssuer{
		tokenURL: cfg.TokenURL,
		client:   cfg.HTTPClient,
		signer:   cfg.Signer,
		now:      time.Now,
	}
	if issuer.tokenURL == "" {
		issuer.tokenURL = TokenURL
	}
	if issuer.client == nil {
		issuer.client = &http.Client{Timeout: exchangeTimeout}
	}
	if issuer.signer == nil {
		issuer.signer = RSASigner{}
	}
	return issuer
}

// tokenResponse is the token endpoint's success payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AccessToken signs an assertion for account and exchanges it for a token.
func (t *TokenIssuer) AccessToken(
	ctx context.Context,
	account domain.ServiceAccount,
	scopes []string,
) (*domain.AccessCredential, error) {
	if !account.IsConfigured() {
		return nil, fmt.Errorf("%w: service account: %w", domain.ErrAuth, domain.ErrNotConfigured)
	}

	assertion, err := t.Assertion(account, scopes)
	if err != nil {
		return nil, fmt.Errorf("%w: sign assertion: %w", domain.ErrAuth, err)
	}

	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token request: %w", domain.ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: token endpoint returned status %d: %s",
			domain.ErrAuth, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %w", domain.ErrAuth, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access_token", domain.ErrAuth)
	}

	cred := &domain.AccessCredential{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}
	if cred.TokenType == "" {
		cred.TokenType = "Bearer"
	}
	if tok.ExpiresIn > 0 {
		cred.Expiry = t.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return cred, nil
}

// Assertion builds the signed JWT for account: issuer is the client email,
// audience is the token endpoint, and it is valid for one hour from now.
func (t *TokenIssuer) Assertion(account domain.ServiceAccount, scopes []string) (string, error) {
	iat := t.now()
	claims := &jws.ClaimSet{
		Iss:   account.ClientEmail,
		Scope: strings.Join(scopes, " "),
		Aud:   TokenURL,
		Iat:   iat.Unix(),
		Exp:   iat.Add(assertionLifetime).Unix(),
	}
	header := &jws.Header{Algorithm: "RS256", Typ: "JWT"}

	return jws.EncodeWithSigner(header, claims, func(data []byte) ([]byte, error) {
		return t.signer.Sign(account, data)
	})
}
