package google

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Google API errors.
var (
	// ErrUnauthorised indicates invalid or expired credentials.
	ErrUnauthorised = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions, typically a calendar
	// that has not been shared with the service account.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrGone indicates the resource has already been deleted.
	ErrGone = errors.New("google: resource deleted")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")
)

// IsUnauthorised returns true if the error indicates invalid credentials.
func IsUnauthorised(err error) bool {
	return matches(err, ErrUnauthorised, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return matches(err, ErrForbidden, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return matches(err, ErrNotFound, http.StatusNotFound)
}

// IsGone returns true if the error indicates a deleted resource (410 GONE).
// Calendar returns this when deleting an event that was already deleted.
func IsGone(err error) bool {
	return matches(err, ErrGone, http.StatusGone)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return matches(err, ErrRateLimited, http.StatusTooManyRequests)
}

func matches(err, sentinel error, code int) bool {
	if errors.Is(err, sentinel) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// WrapError converts a Google API error to a more specific error type.
// Other errors are returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusGone:
		return ErrGone
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return err
	}
}
