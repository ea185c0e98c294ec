package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySentences     = "summary.sentences"
	KeyMaxChars      = "summary.max_chars"
	KeyFallbackChars = "summary.fallback_chars"
	KeyRecursive     = "merge.recursive"
	KeyWorkers       = "merge.workers"
	KeyIndexPolicy   = "index.policy"
	KeyIndexPath     = "index.path"
	KeyIndexDigest   = "index.digest"
)

// settingKind is the value type of a config key.
type settingKind int

const (
	kindInt settingKind = iota
	kindBool
	kindString
)

type settingDef struct {
	kind settingKind
	// min applies to kindInt.
	min int
	// check validates kindString values.
	check func(string) error
}

var settingDefs = map[string]settingDef{
	KeySentences:     {kind: kindInt, min: 1},
	KeyMaxChars:      {kind: kindInt, min: 0},
	KeyFallbackChars: {kind: kindInt, min: 1},
	KeyRecursive:     {kind: kindBool},
	KeyWorkers:       {kind: kindInt, min: 1},
	KeyIndexPolicy: {kind: kindString, check: func(v string) error {
		if !domain.IndexPolicy(v).IsValid() {
			return fmt.Errorf("unknown index policy %q (want append or replace)", v)
		}
		return nil
	}},
	KeyIndexPath:   {kind: kindString},
	KeyIndexDigest: {kind: kindBool},
}

// SettingsService maps persisted configuration onto domain.Settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns defaults overlaid with persisted values. Out-of-range or
// mistyped values fall back to the default for that key.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.Sentences = s.getInt(KeySentences, settings.Sentences)
	settings.MaxChars = s.getInt(KeyMaxChars, settings.MaxChars)
	settings.FallbackChars = s.getInt(KeyFallbackChars, settings.FallbackChars)
	settings.Workers = s.getInt(KeyWorkers, settings.Workers)
	settings.Recursive = s.getBool(KeyRecursive, settings.Recursive)
	settings.WriteDigest = s.getBool(KeyIndexDigest, settings.WriteDigest)
	settings.IndexPath = s.configStore.GetString(KeyIndexPath)
	if policy := domain.IndexPolicy(s.configStore.GetString(KeyIndexPolicy)); policy.IsValid() {
		settings.IndexPolicy = policy
	}

	return settings, nil
}

// Set parses value for key, validates it and persists it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := settingDefs[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	value = strings.TrimSpace(value)

	var typed any
	switch def.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		if n < def.min {
			return fmt.Errorf("%w: %s must be at least %d", domain.ErrInvalidInput, key, def.min)
		}
		typed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		typed = b
	case kindString:
		if def.check != nil {
			if err := def.check(value); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
		}
		typed = value
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingDefs))
	for k := range settingDefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch val.(type) {
	case int, int64, float64:
	default:
		return defaultVal
	}
	n := s.configStore.GetInt(key)
	if n < settingDefs[key].min {
		return defaultVal
	}
	return n
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	if _, ok := val.(bool); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
