// Package auth issues and validates the bearer tokens used by the HTTP API
// and hashes account passwords.
package auth
