// Package domain contains the core business entities of financas-api:
// accounts (registered users) and ledger entries, together with their
// validation rules. It has no knowledge of storage or transport.
package domain
