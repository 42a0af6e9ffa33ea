package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates the resolved site settings and the settings API server
// parameters.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Site   SiteSettings
	Server ServerConfig
}

// ServerConfig holds runtime parameters for the settings API.
type ServerConfig struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML settings file structure. Keys mirror the
// JSON document consumed by the site templates.
type yamlConfig struct {
	Title                 *string           `yaml:"title"`
	URL                   *string           `yaml:"url"`
	Image                 *string           `yaml:"image"`
	ImageAlt              *string           `yaml:"imageAlt"`
	Author                *string           `yaml:"author"`
	Description           *string           `yaml:"description"`
	OpenGraphDefaultImage *string           `yaml:"openGraphDefaultImage"`
	SocialGitHub          *string           `yaml:"socialGitHub"`
	SocialLinkedIn        *string           `yaml:"socialLinkedIn"`
	AlgoliaSearch         yamlAlgoliaSearch `yaml:"algoliaSearch"`
	Server                yamlServer        `yaml:"server"`
}

// yamlAlgoliaSearch represents the algoliaSearch section in YAML.
type yamlAlgoliaSearch struct {
	Enabled      *bool   `yaml:"enabled"`
	AppID        *string `yaml:"appId"`
	SearchAPIKey *string `yaml:"searchApiKey"`
	SiteID       *string `yaml:"siteId"`
	Branch       *string `yaml:"branch"`
}

// yamlServer represents the server section in YAML.
type yamlServer struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	URL            *string
	Branch         *string
	DisableSearch  bool
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load resolves configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(env Environment, overrides *CLIOverrides) (Config, error) {
	cfg := Config{
		Site:   defaultSiteSettings(),
		Server: defaultServerConfig(),
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	applyEnvSettings(&cfg.Site, env)
	applyEnvServer(&cfg.Server, env)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateServerConfig(cfg.Server); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultServerConfig returns a ServerConfig with default values.
func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	site := &cfg.Site
	setString(&site.title, yamlCfg.Title)
	if yamlCfg.URL != nil && *yamlCfg.URL != "" {
		site.url = *yamlCfg.URL
	}
	setString(&site.image, yamlCfg.Image)
	setString(&site.imageAlt, yamlCfg.ImageAlt)
	setString(&site.author, yamlCfg.Author)
	setString(&site.description, yamlCfg.Description)
	setString(&site.openGraphDefaultImage, yamlCfg.OpenGraphDefaultImage)
	setOptional(&site.socialGitHub, yamlCfg.SocialGitHub)
	setOptional(&site.socialLinkedIn, yamlCfg.SocialLinkedIn)

	search := &site.search
	if yamlCfg.AlgoliaSearch.Enabled != nil {
		search.enabled = *yamlCfg.AlgoliaSearch.Enabled
	}
	setOptional(&search.appID, yamlCfg.AlgoliaSearch.AppID)
	setOptional(&search.searchAPIKey, yamlCfg.AlgoliaSearch.SearchAPIKey)
	setOptional(&search.siteID, yamlCfg.AlgoliaSearch.SiteID)
	if yamlCfg.AlgoliaSearch.Branch != nil && *yamlCfg.AlgoliaSearch.Branch != "" {
		search.branch = *yamlCfg.AlgoliaSearch.Branch
	}

	applyYAMLServer(&cfg.Server, yamlCfg.Server)
}

func applyYAMLServer(cfg *ServerConfig, yamlCfg yamlServer) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	setDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	setDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	setDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	setDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
}

// applyEnvServer applies server environment variable configuration.
func applyEnvServer(cfg *ServerConfig, env Environment) {
	if env == nil {
		return
	}

	if port, _ := env("PORT"); strings.TrimSpace(port) != "" {
		cfg.Port = strings.TrimSpace(port)
	}

	if rps, _ := env("RATE_LIMIT_RPS"); strings.TrimSpace(rps) != "" {
		if value, err := strconv.ParseFloat(strings.TrimSpace(rps), 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst, _ := env("RATE_LIMIT_BURST"); strings.TrimSpace(burst) != "" {
		if value, err := strconv.Atoi(strings.TrimSpace(burst)); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.URL != nil && *overrides.URL != "" {
		cfg.Site.url = *overrides.URL
	}

	if overrides.Branch != nil && *overrides.Branch != "" {
		cfg.Site.search.branch = *overrides.Branch
	}

	if overrides.DisableSearch {
		cfg.Site.search.enabled = false
	}

	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Server.Port = *overrides.Port
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.Server.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.Server.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateServerConfig validates the final server configuration. Site settings
// are passed through unchecked.
func validateServerConfig(cfg ServerConfig) error {
	if cfg.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// setOptional treats an empty string as a request to drop the value.
func setOptional(dst *Optional, src *string) {
	switch {
	case src == nil:
	case *src == "":
		*dst = None()
	default:
		*dst = Some(*src)
	}
}

func setDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}
