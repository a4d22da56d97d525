// Package accounts stores account records in the SQLite "accounts" table,
// keyed by email.
//
// Update takes the current email separately from the record so a profile
// edit can move an account to a new key in one statement.
package accounts
