package file

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/bindays/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a read-only, file-based implementation of driven.ConfigStore
// using TOML. Nested tables are flattened into dot-notation keys.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore loads the TOML file at path.
// An empty path yields an empty store; a path that cannot be read or parsed
// is an error.
func NewConfigStore(path string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: path,
		data:     make(map[string]any),
	}
	if path == "" {
		return s, nil
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Lookup retrieves a configuration value by key.
func (s *ConfigStore) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Lookup(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Lookup(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Lookup(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// GetDuration retrieves a duration configuration value.
// Strings use time.ParseDuration syntax ("24h", "90m"); integers are seconds.
func (s *ConfigStore) GetDuration(key string) time.Duration {
	val, ok := s.Lookup(key)
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0
		}
		return d
	case int64:
		return time.Duration(v) * time.Second
	default:
		return 0
	}
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", s.filePath, err)
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse config %s: %w", s.filePath, err)
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the configuration file path, or "" for an empty store.
func (s *ConfigStore) Path() string {
	return s.filePath
}
