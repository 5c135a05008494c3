package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ephemeris.Source != "builtin" {
		t.Fatalf("source = %q, want builtin", cfg.Ephemeris.Source)
	}
	if cfg.Ephemeris.MinYear != 1900 || cfg.Ephemeris.MaxYear != 2100 {
		t.Fatalf("year bounds = %d..%d", cfg.Ephemeris.MinYear, cfg.Ephemeris.MaxYear)
	}
	if cfg.Astro.Zodiac != "sidereal" || cfg.Astro.HouseSystem != "placidus" {
		t.Fatalf("astro defaults = %q %q", cfg.Astro.Zodiac, cfg.Astro.HouseSystem)
	}
	if cfg.Astro.StelliumArc != 8 {
		t.Fatalf("stellium arc = %v, want 8", cfg.Astro.StelliumArc)
	}
	if cfg.Ephemeris.RetryBackoff == 0 {
		t.Fatalf("retry backoff default missing")
	}
}

func TestLoadOrbOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\nastro:\n  stellium_arc: 10\n  orbs:\n    trine: 6\n    conjunction: 10\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Astro.Orbs["trine"] != 6 || cfg.Astro.Orbs["conjunction"] != 10 {
		t.Fatalf("orbs = %v", cfg.Astro.Orbs)
	}
	if cfg.Astro.StelliumArc != 10 {
		t.Fatalf("stellium arc = %v, want 10", cfg.Astro.StelliumArc)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing environment", "server:\n  port: 1\n"},
		{"bad source", "environment: test\nephemeris:\n  source: swiss\n"},
		{"clickhouse without host", "environment: test\nephemeris:\n  source: clickhouse\n"},
		{"inverted years", "environment: test\nephemeris:\n  min_year: 2100\n  max_year: 1900\n"},
		{"bad zodiac", "environment: test\nastro:\n  zodiac: draconic\n"},
		{"bad house system", "environment: test\nastro:\n  house_system: koch\n"},
		{"bad ayanamsa", "environment: test\nastro:\n  ayanamsa: raman\n"},
		{"unknown orb aspect", "environment: test\nastro:\n  orbs:\n    novile: 2\n"},
		{"negative orb", "environment: test\nastro:\n  orbs:\n    trine: -1\n"},
		{"negative stellium arc", "environment: test\nastro:\n  stellium_arc: -3\n"},
	}
	for _, tc := range cases {
		path := writeConfig(t, tc.body)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	t.Setenv("ZODIAC", "tropical")
	t.Setenv("PORT", "9090")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Astro.Zodiac != "tropical" {
		t.Fatalf("zodiac = %q, want tropical", cfg.Astro.Zodiac)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d, want 9090", cfg.Server.Port)
	}
}
