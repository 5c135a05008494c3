package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Ephemeris struct {
		Source       string        `yaml:"source"` // builtin or clickhouse
		MinYear      int           `yaml:"min_year"`
		MaxYear      int           `yaml:"max_year"`
		RetryBackoff time.Duration `yaml:"retry_backoff"`
		Table        string        `yaml:"table"`
	} `yaml:"ephemeris"`
	Astro struct {
		Zodiac      string             `yaml:"zodiac"`       // sidereal or tropical
		Ayanamsa    string             `yaml:"ayanamsa"`     // lahiri only for now
		HouseSystem string             `yaml:"house_system"` // placidus or whole-sign
		Orbs        map[string]float64 `yaml:"orbs"`         // base orb overrides per aspect, degrees
		StelliumArc float64            `yaml:"stellium_arc"` // cluster detection arc, degrees
	} `yaml:"astro"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		Enabled bool `yaml:"enabled"`
		TTL     struct {
			Fast   time.Duration `yaml:"fast"`
			Slow   time.Duration `yaml:"slow"`
			Static time.Duration `yaml:"static"`
		} `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Logging struct {
		Level       string `yaml:"level"`
		Format      string `yaml:"format"`
		Output      string `yaml:"output"`
		Aggregation struct {
			Enabled   bool          `yaml:"enabled"`
			Interval  time.Duration `yaml:"interval"`
			Threshold int           `yaml:"threshold"`
			Topic     string        `yaml:"topic"`
		} `yaml:"aggregation"`
	} `yaml:"logging"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("EPHEMERIS_SOURCE"); v != "" {
		c.Ephemeris.Source = v
	}
	if v := os.Getenv("ZODIAC"); v != "" {
		c.Astro.Zodiac = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Ephemeris.Source == "" {
		c.Ephemeris.Source = "builtin"
	}
	if c.Ephemeris.MinYear == 0 {
		c.Ephemeris.MinYear = 1900
	}
	if c.Ephemeris.MaxYear == 0 {
		c.Ephemeris.MaxYear = 2100
	}
	if c.Ephemeris.Table == "" {
		c.Ephemeris.Table = "ephemeris_daily"
	}
	if c.Ephemeris.RetryBackoff == 0 {
		c.Ephemeris.RetryBackoff = 100 * time.Millisecond
	}
	if c.Astro.Zodiac == "" {
		c.Astro.Zodiac = "sidereal"
	}
	if c.Astro.Ayanamsa == "" {
		c.Astro.Ayanamsa = "lahiri"
	}
	if c.Astro.HouseSystem == "" {
		c.Astro.HouseSystem = "placidus"
	}
	if c.Astro.StelliumArc == 0 {
		c.Astro.StelliumArc = 8
	}
	if c.Logging.Aggregation.Interval == 0 {
		c.Logging.Aggregation.Interval = 30 * time.Second
	}
	if c.Logging.Aggregation.Threshold == 0 {
		c.Logging.Aggregation.Threshold = 100
	}
	if c.Logging.Aggregation.Topic == "" {
		c.Logging.Aggregation.Topic = "log-aggregate"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Ephemeris.Source != "builtin" && c.Ephemeris.Source != "clickhouse" {
		return fmt.Errorf("ephemeris.source must be 'builtin' or 'clickhouse', got '%s'", c.Ephemeris.Source)
	}
	if c.Ephemeris.Source == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when ephemeris.source is 'clickhouse'")
	}
	if c.Ephemeris.MinYear >= c.Ephemeris.MaxYear {
		return fmt.Errorf("ephemeris.min_year must precede max_year")
	}
	if c.Astro.Zodiac != "sidereal" && c.Astro.Zodiac != "tropical" {
		return fmt.Errorf("astro.zodiac must be 'sidereal' or 'tropical', got '%s'", c.Astro.Zodiac)
	}
	if c.Astro.Ayanamsa != "lahiri" {
		return fmt.Errorf("astro.ayanamsa must be 'lahiri', got '%s'", c.Astro.Ayanamsa)
	}
	if c.Astro.HouseSystem != "placidus" && c.Astro.HouseSystem != "whole-sign" {
		return fmt.Errorf("astro.house_system must be 'placidus' or 'whole-sign', got '%s'", c.Astro.HouseSystem)
	}
	for name, orb := range c.Astro.Orbs {
		if !validOrbAspects[name] {
			return fmt.Errorf("astro.orbs: unknown aspect '%s'", name)
		}
		if orb <= 0 {
			return fmt.Errorf("astro.orbs.%s must be positive, got %v", name, orb)
		}
	}
	if c.Astro.StelliumArc <= 0 {
		return fmt.Errorf("astro.stellium_arc must be positive, got %v", c.Astro.StelliumArc)
	}
	return nil
}

// validOrbAspects lists the aspect names astro.orbs may override.
var validOrbAspects = map[string]bool{
	"conjunction":    true,
	"semi-sextile":   true,
	"semi-square":    true,
	"sextile":        true,
	"square":         true,
	"trine":          true,
	"sesquiquadrate": true,
	"quincunx":       true,
	"opposition":     true,
}
