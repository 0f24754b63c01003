// hot-reload_test.go: unit tests for dynamic TTL configuration
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewHotConfig_RequiresPath(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	if _, err := NewHotConfig(store, HotConfigOptions{}); err == nil {
		t.Error("expected an error for a missing config path")
	}
}

func TestNewHotConfig_InitialAgeMax(t *testing.T) {
	store, _ := newTestStore(42 * time.Second)
	path := writeConfigFile(t, `{"cache": {"age_max": "10m"}}`)

	hc, err := NewHotConfig(store, HotConfigOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	if hc.AgeMax() != 42*time.Second {
		t.Errorf("initial TTL should mirror the store, got %v", hc.AgeMax())
	}
}

func TestHotConfig_AppliesChange(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	path := writeConfigFile(t, `{"cache": {"age_max": "1m"}}`)

	var gotOld, gotNew time.Duration
	hc, err := NewHotConfig(store, HotConfigOptions{
		ConfigPath: path,
		OnReload: func(oldAgeMax, newAgeMax time.Duration) {
			gotOld, gotNew = oldAgeMax, newAgeMax
		},
	})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	hc.handleConfigChange(map[string]interface{}{
		"cache": map[string]interface{}{"age_max": "30s"},
	})

	if store.AgeMax() != 30*time.Second {
		t.Errorf("store TTL not updated: %v", store.AgeMax())
	}
	if hc.AgeMax() != 30*time.Second {
		t.Errorf("hot config TTL not updated: %v", hc.AgeMax())
	}
	if gotOld != time.Minute || gotNew != 30*time.Second {
		t.Errorf("OnReload got %v -> %v", gotOld, gotNew)
	}
}

func TestHotConfig_IgnoresIrrelevantChange(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	path := writeConfigFile(t, `{"cache": {"age_max": "1m"}}`)

	hc, err := NewHotConfig(store, HotConfigOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	hc.handleConfigChange(map[string]interface{}{"unrelated": true})
	hc.handleConfigChange(map[string]interface{}{
		"cache": map[string]interface{}{"age_max": "not a duration"},
	})
	hc.handleConfigChange(map[string]interface{}{
		"cache": map[string]interface{}{"age_max": -5},
	})

	if store.AgeMax() != time.Minute {
		t.Errorf("TTL must survive malformed reloads, got %v", store.AgeMax())
	}
}

func TestParseAgeMax(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want time.Duration
		ok   bool
	}{
		{
			"nested duration string",
			map[string]interface{}{"cache": map[string]interface{}{"age_max": "1h"}},
			time.Hour, true,
		},
		{
			"nested integer milliseconds",
			map[string]interface{}{"cache": map[string]interface{}{"age_max": 1500}},
			1500 * time.Millisecond, true,
		},
		{
			"nested float milliseconds",
			map[string]interface{}{"cache": map[string]interface{}{"age_max": float64(2000)}},
			2 * time.Second, true,
		},
		{
			"top-level age_max",
			map[string]interface{}{"age_max": "30s"},
			30 * time.Second, true,
		},
		{
			"missing section",
			map[string]interface{}{"other": 1},
			0, false,
		},
		{
			"invalid string",
			map[string]interface{}{"age_max": "soon"},
			0, false,
		},
		{
			"non-positive",
			map[string]interface{}{"age_max": 0},
			0, false,
		},
		{
			"negative duration string",
			map[string]interface{}{"age_max": "-1m"},
			0, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAgeMax(tt.data)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseAgeMax = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
