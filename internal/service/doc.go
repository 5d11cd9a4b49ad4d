// Package service holds the application services for accounts and ledger
// entries. Services depend on the store interfaces and never on a concrete
// database, and they report rule violations through the typed errors in
// errors.go.
package service
