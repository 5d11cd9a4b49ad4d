// Package testutils holds helpers shared by tests across packages: an
// in-memory slog handler for asserting on log output and HTTP response
// assertions for the API's error format.
package testutils
