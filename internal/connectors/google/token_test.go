package google

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2/jws"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

var issuedAt = time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func pkcs8PEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func pkcs1PEM(key *rsa.PrivateKey) string {
	der := x509.MarshalPKCS1PrivateKey(key)
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: der}))
}

// stubSigner returns a fixed signature.
type stubSigner struct {
	sig []byte
	err error
}

func (s stubSigner) Sign(_ domain.ServiceAccount, _ []byte) ([]byte, error) {
	return s.sig, s.err
}

func newTestIssuer(tokenURL string, signer Signer) *TokenIssuer {
	issuer := NewTokenIssuer(TokenIssuerConfig{TokenURL: tokenURL, Signer: signer})
	issuer.now = func() time.Time { return issuedAt }
	return issuer
}

func TestParsePrivateKey(t *testing.T) {
	key := generateKey(t)

	t.Run("pkcs8", func(t *testing.T) {
		parsed, err := ParsePrivateKey(pkcs8PEM(t, key))
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("pkcs1", func(t *testing.T) {
		parsed, err := ParsePrivateKey(pkcs1PEM(key))
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("escaped newlines from environment", func(t *testing.T) {
		escaped := strings.ReplaceAll(pkcs8PEM(t, key), "\n", `\n`)
		account := domain.NewServiceAccount("svc@example.iam.gserviceaccount.com", escaped)

		parsed, err := ParsePrivateKey(account.PrivateKey)
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("not pem", func(t *testing.T) {
		_, err := ParsePrivateKey("not a key")
		assert.Error(t, err)
	})

	t.Run("garbage block", func(t *testing.T) {
		block := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("junk")}))
		_, err := ParsePrivateKey(block)
		assert.Error(t, err)
	})
}

func TestTokenIssuer_Assertion(t *testing.T) {
	key := generateKey(t)
	account := domain.ServiceAccount{
		ClientEmail: "svc@example.iam.gserviceaccount.com",
		PrivateKey:  pkcs8PEM(t, key),
	}
	issuer := newTestIssuer("", nil)

	assertion, err := issuer.Assertion(account, []string{domain.CalendarScope})
	require.NoError(t, err)

	require.NoError(t, jws.Verify(assertion, &key.PublicKey))

	claims, err := jws.Decode(assertion)
	require.NoError(t, err)
	assert.Equal(t, account.ClientEmail, claims.Iss)
	assert.Equal(t, domain.CalendarScope, claims.Scope)
	assert.Equal(t, TokenURL, claims.Aud)
	assert.Equal(t, issuedAt.Unix(), claims.Iat)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), claims.Exp)
}

func TestTokenIssuer_AccessToken(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type": r.PostForm.Get("grant_type"),
			"assertion":  r.PostForm.Get("assertion"),
		}
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"ya29.token","token_type":"Bearer","expires_in":3599}`))
	}))
	defer srv.Close()

	issuer := newTestIssuer(srv.URL, stubSigner{sig: []byte("signature")})
	account := domain.ServiceAccount{ClientEmail: "svc@example.com", PrivateKey: "unused"}

	cred, err := issuer.AccessToken(context.Background(), account, []string{domain.CalendarScope})
	require.NoError(t, err)

	assert.Equal(t, "ya29.token", cred.AccessToken)
	assert.Equal(t, "Bearer", cred.TokenType)
	assert.Equal(t, issuedAt.Add(3599*time.Second), cred.Expiry)

	assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", gotForm["grant_type"])
	parts := strings.Split(gotForm["assertion"], ".")
	require.Len(t, parts, 3)
}

func TestTokenIssuer_AccessToken_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		signer  Signer
		account domain.ServiceAccount
		wantMsg string
	}{
		{
			name:    "rejected grant",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid_grant","error_description":"Invalid JWT Signature."}`,
			wantMsg: "status 400",
		},
		{
			name:    "missing access token",
			status:  http.StatusOK,
			body:    `{"token_type":"Bearer"}`,
			wantMsg: "no access_token",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `not json`,
			wantMsg: "decode token response",
		},
		{
			name:    "signing failure",
			signer:  stubSigner{err: errors.New("bad key")},
			wantMsg: "sign assertion",
		},
		{
			name:    "unconfigured account",
			account: domain.ServiceAccount{ClientEmail: "svc@example.com"},
			wantMsg: "not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			signer := tt.signer
			if signer == nil {
				signer = stubSigner{sig: []byte("sig")}
			}
			account := tt.account
			if account == (domain.ServiceAccount{}) {
				account = domain.ServiceAccount{ClientEmail: "svc@example.com", PrivateKey: "unused"}
			}

			_, err := newTestIssuer(srv.URL, signer).AccessToken(context.Background(), account, nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrAuth)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTokenIssuer_AccessToken_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	account := domain.ServiceAccount{ClientEmail: "svc@example.com", PrivateKey: "unused"}
	_, err := newTestIssuer(url, stubSigner{sig: []byte("sig")}).AccessToken(context.Background(), account, nil)

	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestNewTokenIssuer_Defaults(t *testing.T) {
	issuer := NewTokenIssuer(TokenIssuerConfig{})

	assert.Equal(t, TokenURL, issuer.tokenURL)
	require.NotNil(t, issuer.client)
	assert.NotSame(t, http.DefaultClient, issuer.client)
	assert.Equal(t, 30*time.Second, issuer.client.Timeout)
	assert.IsType(t, RSASigner{}, issuer.signer)
}
