package domain

import (
	"strings"
	"time"
)

// CalendarScope grants read/write access to calendars.
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// ServiceAccount holds the Google service account used to write reminders.
type ServiceAccount struct {
	// ClientEmail is the service account email, used as the assertion issuer.
	ClientEmail string
	// PrivateKey is the PEM encoded RSA key.
	PrivateKey string
}

// NewServiceAccount creates a ServiceAccount, unescaping literal "\n"
// sequences in the key as they appear when the key is passed via environment.
func NewServiceAccount(clientEmail, privateKey string) ServiceAccount {
	return ServiceAccount{
		ClientEmail: clientEmail,
		PrivateKey:  strings.ReplaceAll(privateKey, `\n`, "\n"),
	}
}

// IsConfigured returns true if both fields are set.
func (s ServiceAccount) IsConfigured() bool {
	return s.ClientEmail != "" && s.PrivateKey != ""
}

// AccessCredential is a short-lived bearer token.
// Its lifetime is a single invocation; it is never persisted.
type AccessCredential struct {
	// AccessToken is the bearer token for API access.
	AccessToken string
	// TokenType is typically "Bearer".
	TokenType string
	// Expiry is when the access token expires.
	Expiry time.Time
}
