// Package config manages warden configuration.
//
// Configuration is loaded from, in order of increasing precedence:
// defaults, the YAML config file (WARDEN_CONFIG_PATH/warden.yml), and
// WARDEN_* environment variables. Each attribute remembers which layer
// supplied its effective value, surfaced through Source and Attributes
// for operator tooling.
package config
