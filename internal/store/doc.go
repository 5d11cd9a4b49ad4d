// Package store defines the persistence contracts for accounts and ledger
// entries, the error taxonomy every implementation maps its failures onto, and
// a small transaction helper for database/sql backed stores.
package store
