// Package main implements wardenctl, the operator CLI for the warden
// security facade.
//
// Warden provides ambient, per-execution-flow identity: code asks the
// facade "who is the current caller, and may they do X" without an
// identity parameter threaded through every function. wardenctl lets
// operators exercise that machinery from the command line.
//
// # Commands
//
//	# Mint a signed token for a subject
//	wardenctl token mint alice --roles admin,auditor
//
//	# Authenticate a token and print the resolved identity
//	wardenctl whoami --token "$TOKEN"
//
//	# Check a permission for the token's identity
//	wardenctl check --token "$TOKEN" --policy policy.yml read secret:db-password
//
//	# Show effective configuration and where each value came from
//	wardenctl configuration show
//
// # Environment Variables
//
//   - WARDEN_SIGNING_KEY: Base64-encoded HMAC key for token signing
//   - WARDEN_CONFIG_PATH: Directory containing warden.yml
//   - WARDEN_* attribute overrides (see package config)
package main
