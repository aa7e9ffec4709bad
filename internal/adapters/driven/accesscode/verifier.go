// Package accesscode verifies the shared-secret access code of invocations.
//
// The expected code is either plain text or an argon2id hash in the PHC
// string format produced by HashCode:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
package accesscode

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/logger"
)

// Ensure Verifier implements the interface.
var _ driven.AccessVerifier = (*Verifier)(nil)

// Argon2id parameters.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

const hashPrefix = "$argon2id$"

// ErrInvalidHash indicates an expected code that looks like, but is not, a
// valid argon2id hash.
var ErrInvalidHash = errors.New("invalid argon2id hash")

// Verifier compares supplied codes against the expected code.
type Verifier struct {
	expected string
	hashed   *argonHash
}

// NewVerifier creates a verifier for expected.
// Returns nil and no error when expected is empty: no code is configured.
func NewVerifier(expected string) (*Verifier, error) {
	if expected == "" {
		return nil, nil
	}

	v := &Verifier{expected: expected}
	if IsHash(expected) {
		h, err := parseHash(expected)
		if err != nil {
			return nil, err
		}
		v.hashed = h
	}
	return v, nil
}

// Verify returns true if code matches the expected code.
// An empty code never matches.
func (v *Verifier) Verify(code string) bool {
	if code == "" {
		return false
	}
	if v.hashed != nil {
		return v.hashed.matches(code)
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(v.expected)) == 1
}

// Hashed returns true if the expected code is an argon2id hash.
func (v *Verifier) Hashed() bool {
	return v.hashed != nil
}

// IsHash returns true if s uses the argon2id hash format.
func IsHash(s string) bool {
	return strings.HasPrefix(s, hashPrefix)
}

// HashCode creates an argon2id hash of code with a random salt.
func HashCode(code string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(code), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// maxMemoryKiB caps the argon2 memory parameter at 1 GiB.
const maxMemoryKiB = 1 << 20

type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func parseHash(s string) (*argonHash, error) {
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: expected 6 fields", ErrInvalidHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: version: %w", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var h argonHash
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &threads); err != nil {
		return nil, fmt.Errorf("%w: parameters: %w", ErrInvalidHash, err)
	}
	if threads == 0 || threads > 255 {
		return nil, fmt.Errorf("%w: parallelism %d out of range", ErrInvalidHash, threads)
	}
	h.threads = uint8(threads)
	if h.time == 0 {
		return nil, fmt.Errorf("%w: iterations must be at least 1", ErrInvalidHash)
	}
	if h.memory == 0 || h.memory > maxMemoryKiB {
		return nil, fmt.Errorf("%w: memory %d KiB out of range", ErrInvalidHash, h.memory)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %w", ErrInvalidHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: key: %w", ErrInvalidHash, err)
	}
	if len(h.key) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidHash)
	}

	logger.Debug("Access code hash: m=%d t=%d p=%d", h.memory, h.time, h.threads)
	return &h, nil
}

func (h *argonHash) matches(code string) bool {
	computed := argon2.IDKey([]byte(code), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(h.key, computed) == 1
}
