// Package google provides shared infrastructure for the Google Calendar connector.
//
// This package contains:
//   - A TokenIssuer that signs service account assertions and exchanges
//     them for bearer tokens at the OAuth2 token endpoint
//   - A TokenSource adapter bridging the issuer to oauth2.TokenSource
//   - The Calendar service factory
//   - Error handling for common Google API errors (401, 403, 404, 410, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	issuer := google.NewTokenIssuer(google.TokenIssuerConfig{})
//	cred, err := issuer.AccessToken(ctx, account, []string{domain.CalendarScope})
//
// The calendar subpackage builds a driven.CalendarConnector on top of these.
//
// # OAuth2 Scopes
//
// Only https://www.googleapis.com/auth/calendar is requested. The calendar
// must be shared with the service account's client email.
package google
