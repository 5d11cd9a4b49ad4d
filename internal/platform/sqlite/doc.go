// Package sqlite implements the store interfaces with gorm on SQLite. It backs
// local runs (database.driver = sqlite) and exercises the store contracts in
// tests without an external database.
package sqlite
