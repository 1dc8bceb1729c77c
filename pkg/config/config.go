package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/warden"
	ConfigFileName    = "warden.yml"
)

// ValidAuthenticators is the list of bundled authenticator names.
var ValidAuthenticators = []string{"apikey", "jwt"}

// Config holds all warden configuration settings.
type Config struct {
	// SessionTTLSeconds is the idle lifetime of sessions in seconds.
	SessionTTLSeconds int `yaml:"session_ttl" json:"session_ttl"`

	// TokenTTLSeconds is the lifetime of minted JWTs in seconds.
	TokenTTLSeconds int `yaml:"token_ttl" json:"token_ttl"`

	// Issuer is the expected JWT issuer claim.
	Issuer string `yaml:"issuer" json:"issuer"`

	// Audience is the expected JWT audience claim.
	Audience string `yaml:"audience" json:"audience"`

	// RolesClaim is the JWT claim carrying the subject's roles.
	RolesClaim string `yaml:"roles_claim" json:"roles_claim"`

	// Authenticators is the list of enabled authenticators.
	Authenticators []string `yaml:"authenticators" json:"authenticators"`

	// BcryptCost is the cost used when hashing new credentials.
	BcryptCost int `yaml:"bcrypt_cost" json:"bcrypt_cost"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute is a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newDefault() *Config {
	return &Config{
		SessionTTLSeconds: 1800,
		TokenTTLSeconds:   480,
		RolesClaim:        "roles",
		Authenticators:    []string{"apikey"},
		BcryptCost:        10,
		sources:           make(map[string]string),
	}
}

func attributeNames() []string {
	return []string{
		"session_ttl", "token_ttl", "issuer", "audience",
		"roles_claim", "authenticators", "bcrypt_cost",
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("WARDEN_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func (c *Config) applyFileConfig(file *Config) {
	if file.SessionTTLSeconds != 0 {
		c.SessionTTLSeconds = file.SessionTTLSeconds
		c.sources["session_ttl"] = "file"
	}
	if file.TokenTTLSeconds != 0 {
		c.TokenTTLSeconds = file.TokenTTLSeconds
		c.sources["token_ttl"] = "file"
	}
	if file.Issuer != "" {
		c.Issuer = file.Issuer
		c.sources["issuer"] = "file"
	}
	if file.Audience != "" {
		c.Audience = file.Audience
		c.sources["audience"] = "file"
	}
	if file.RolesClaim != "" {
		c.RolesClaim = file.RolesClaim
		c.sources["roles_claim"] = "file"
	}
	if len(file.Authenticators) > 0 {
		c.Authenticators = file.Authenticators
		c.sources["authenticators"] = "file"
	}
	if file.BcryptCost != 0 {
		c.BcryptCost = file.BcryptCost
		c.sources["bcrypt_cost"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("WARDEN_SESSION_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTTLSeconds = i
			c.sources["session_ttl"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTLSeconds = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_ISSUER"); val != "" {
		c.Issuer = val
		c.sources["issuer"] = "environment"
	}
	if val := os.Getenv("WARDEN_AUDIENCE"); val != "" {
		c.Audience = val
		c.sources["audience"] = "environment"
	}
	if val := os.Getenv("WARDEN_ROLES_CLAIM"); val != "" {
		c.RolesClaim = val
		c.sources["roles_claim"] = "environment"
	}
	if val := os.Getenv("WARDEN_AUTHENTICATORS"); val != "" {
		c.Authenticators = splitAndTrim(val)
		c.sources["authenticators"] = "environment"
	}
	if val := os.Getenv("WARDEN_BCRYPT_COST"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.BcryptCost = i
			c.sources["bcrypt_cost"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Attributes lists every attribute with its effective value and source.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "session_ttl", Value: strconv.Itoa(c.SessionTTLSeconds), Source: c.Source("session_ttl")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTLSeconds), Source: c.Source("token_ttl")},
		{Name: "issuer", Value: c.Issuer, Source: c.Source("issuer")},
		{Name: "audience", Value: c.Audience, Source: c.Source("audience")},
		{Name: "roles_claim", Value: c.RolesClaim, Source: c.Source("roles_claim")},
		{Name: "authenticators", Value: strings.Join(c.Authenticators, ","), Source: c.Source("authenticators")},
		{Name: "bcrypt_cost", Value: strconv.Itoa(c.BcryptCost), Source: c.Source("bcrypt_cost")},
	}
}

// SessionTTL returns the session TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// TokenTTL returns the token TTL as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// IsAuthenticatorEnabled checks if an authenticator is enabled.
func (c *Config) IsAuthenticatorEnabled(name string) bool {
	for _, a := range c.Authenticators {
		if a == name {
			return true
		}
	}
	return false
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
