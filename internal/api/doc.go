// Package api contains the HTTP handlers of the finance API. Handlers decode
// and validate requests, call the account and entry services, and translate
// service errors into status codes in one place (errors.go).
package api
