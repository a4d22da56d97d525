// Package localstore persists string slots in the SQLite "slots" table.
//
// It stands in for browser local storage: the session flag, the active
// account email and, on older databases, the legacy "user" and "users"
// JSON slots all live here. GetJSON and SetJSON wrap the raw string API for
// slots that carry JSON documents.
package localstore
