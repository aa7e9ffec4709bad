// Package config resolves bindays settings.
//
// Values are taken, in order of precedence, from the process environment, an
// optional .env file and an optional TOML file. Environment variable names
// follow the deployment conventions (ADDRESS, CLIENT_EMAIL, ...); TOML keys
// use dotted tables (calendar.id, google.client_email, ...).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/bindays/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// Defaults.
const (
	DefaultAddress          = "123 Some Road Hitchin AB1 2CD"
	DefaultListenAddr       = ":8080"
	DefaultScheduleInterval = 24 * time.Hour
	DefaultEnvFile          = ".env"
)

// setting binds an environment variable to its TOML key.
type setting struct {
	env string
	key string
}

var (
	settingAddress          = setting{"ADDRESS", "address"}
	settingClientEmail      = setting{"CLIENT_EMAIL", "google.client_email"}
	settingPrivateKey       = setting{"PRIVATE_KEY", "google.private_key"}
	settingCalendarID       = setting{"CALENDAR_ID", "calendar.id"}
	settingAccessCode       = setting{"BINS_ACCESS_CODE", "access_code"}
	settingIsLocal          = setting{"IS_LOCAL", "browser.local"}
	settingChromePath       = setting{"CHROME_PATH", "browser.chrome_path"}
	settingSite             = setting{"SITE", "site"}
	settingDryRun           = setting{"DRY_RUN", "dry_run"}
	settingListenAddr       = setting{"LISTEN_ADDR", "server.listen"}
	settingScheduleInterval = setting{"SCHEDULE_INTERVAL", "schedule.interval"}
	settingHouseNumber      = setting{"ADDRESS_NO", "whitespace.house_number"}
	settingPostcode         = setting{"ADDRESS_POSTCODE", "whitespace.postcode"}
	settingWhitespaceURL    = setting{"WHITESPACE_URL", "whitespace.url"}
)

// Settings is the resolved configuration of a bindays process.
type Settings struct {
	// Address is the household to look up.
	Address string
	// Account is the Google service account writing reminders.
	Account domain.ServiceAccount
	// CalendarID is the target calendar.
	CalendarID string
	// AccessCode is the shared secret, plain or an argon2id hash.
	// Empty disables the code check.
	AccessCode string
	// IsLocal selects the local browser launch strategy.
	IsLocal bool
	// ChromePath overrides the browser executable.
	ChromePath string
	// Site selects the council site adapter.
	Site string
	// DryRun disables calendar writes.
	DryRun bool
	// ListenAddr is the HTTP listen address of serve mode.
	ListenAddr string
	// ScheduleInterval is the serve-mode run interval. Zero disables it.
	ScheduleInterval time.Duration
	// HouseNumber and Postcode override the parts derived from Address
	// for the whitespace portal.
	HouseNumber string
	Postcode    string
	// WhitespaceURL overrides the whitespace portal base URL.
	WhitespaceURL string

	// ConfigPath is the TOML file the settings were read from, if any.
	ConfigPath string
}

// CalendarConfigured returns true if calendar integration can run.
func (s *Settings) CalendarConfigured() bool {
	return s.Account.IsConfigured() && s.CalendarID != ""
}

// Options controls where settings are read from.
type Options struct {
	// ConfigPath is an optional TOML file. Empty means none.
	ConfigPath string
	// EnvFile is an optional dotenv file. Empty means DefaultEnvFile.
	// A missing file is ignored.
	EnvFile string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves settings from the environment, dotenv and TOML file.
func Load(opts Options) (*Settings, error) {
	store, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	r := &resolver{store: store, dotenv: dotenv, lookup: lookup}
	return r.settings(store.Path())
}

type resolver struct {
	store  driven.ConfigStore
	dotenv map[string]string
	lookup func(string) (string, bool)
	errs   []error
}

func (r *resolver) settings(path string) (*Settings, error) {
	s := &Settings{
		Address: r.string(settingAddress, DefaultAddress),
		Account: domain.NewServiceAccount(
			r.string(settingClientEmail, ""),
			r.string(settingPrivateKey, ""),
		),
		CalendarID:       r.string(settingCalendarID, ""),
		AccessCode:       r.string(settingAccessCode, ""),
		IsLocal:          r.bool(settingIsLocal),
		ChromePath:       r.string(settingChromePath, ""),
		Site:             r.string(settingSite, ""),
		DryRun:           r.bool(settingDryRun),
		ListenAddr:       r.string(settingListenAddr, DefaultListenAddr),
		ScheduleInterval: r.duration(settingScheduleInterval, DefaultScheduleInterval),
		HouseNumber:      r.string(settingHouseNumber, ""),
		Postcode:         r.string(settingPostcode, ""),
		WhitespaceURL:    r.string(settingWhitespaceURL, ""),
		ConfigPath:       path,
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return s, nil
}

// env returns the environment or dotenv value of a setting.
func (r *resolver) env(s setting) (string, bool) {
	if v, ok := r.lookup(s.env); ok && v != "" {
		return v, true
	}
	if v, ok := r.dotenv[s.env]; ok && v != "" {
		return v, true
	}
	return "", false
}

func (r *resolver) string(s setting, def string) string {
	if v, ok := r.env(s); ok {
		return v
	}
	if v := r.store.GetString(s.key); v != "" {
		return v
	}
	return def
}

func (r *resolver) bool(s setting) bool {
	if v, ok := r.env(s); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %q is not a boolean", s.env, v))
			return false
		}
		return b
	}
	return r.store.GetBool(s.key)
}

func (r *resolver) duration(s setting, def time.Duration) time.Duration {
	if v, ok := r.env(s); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %q is not a duration", s.env, v))
			return def
		}
		return d
	}
	if _, ok := r.store.Lookup(s.key); ok {
		return r.store.GetDuration(s.key)
	}
	return def
}
