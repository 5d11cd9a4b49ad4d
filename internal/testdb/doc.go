// Package testdb opens the Postgres database used by integration tests.
//
// Tests call GetTestDBWithT, which skips when no database URL is configured,
// applies the embedded migrations and empties the tables. WithTx gives a test
// a transaction that is always rolled back.
package testdb
