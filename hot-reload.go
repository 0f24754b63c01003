// hot-reload.go: dynamic age_max configuration with Argus integration
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig provides dynamic TTL reload capabilities using Argus. It
// watches a configuration file and applies age_max changes to the
// store as they are detected.
type HotConfig struct {
	store   *Store
	watcher *argus.Watcher
	mu      sync.RWMutex
	ageMax  time.Duration

	// OnReload is called after a new age_max is successfully applied.
	// This callback is optional and must be fast and non-blocking.
	OnReload func(oldAgeMax, newAgeMax time.Duration)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after a new age_max is successfully applied.
	OnReload func(oldAgeMax, newAgeMax time.Duration)

	// Logger for hot reload operations.
	// If nil, uses the store's logger.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable TTL configuration for a store.
//
// Example configuration file (YAML):
//
//	cache:
//	  age_max: "10m"
//
// Supported configuration keys:
//   - cache.age_max: record TTL, either a duration string ("1h",
//     "30m") or an integer number of milliseconds
func NewHotConfig(store *Store, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = store.logger
	}

	hc := &HotConfig{
		store:    store,
		OnReload: opts.OnReload,
		ageMax:   store.AgeMax(),
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil // Already started
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// AgeMax returns the most recently applied TTL (thread-safe).
func (hc *HotConfig) AgeMax() time.Duration {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.ageMax
}

// handleConfigChange is called by Argus when configuration changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	ageMax, ok := parseAgeMax(configData)
	if !ok {
		return
	}

	hc.mu.Lock()
	old := hc.ageMax
	hc.ageMax = ageMax
	hc.mu.Unlock()

	if err := hc.store.SetAgeMax(ageMax); err != nil {
		hc.store.logger.Warn("rejected hot-reloaded age_max", "age_max", ageMax, "error", err)
		return
	}

	if hc.OnReload != nil {
		hc.OnReload(old, ageMax)
	}
}

// parseAgeMax extracts the age_max value from Argus config data. The
// cache section may be nested or the document itself; the value may be
// a duration string or an integer number of milliseconds.
func parseAgeMax(data map[string]interface{}) (time.Duration, bool) {
	section, ok := data["cache"].(map[string]interface{})
	if !ok {
		if _, hasAgeMax := data["age_max"]; hasAgeMax {
			section = data
		} else {
			return 0, false
		}
	}

	if d, ok := parseDuration(section["age_max"]); ok {
		return d, true
	}
	if ms, ok := parsePositiveInt(section["age_max"]); ok {
		return time.Duration(ms) * time.Millisecond, true
	}
	return 0, false
}

// parsePositiveInt extracts a positive integer from interface{} value.
// Supports both int and float64 types (YAML/JSON may vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseDuration extracts a time.Duration from a string value.
func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil && d > 0 {
			return d, true
		}
	}
	return 0, false
}
