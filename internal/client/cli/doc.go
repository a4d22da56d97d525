// Package cli provides the interactive gophprofile command-line client.
//
// It wires configuration, the local SQLite store, the credential store and the
// session guard behind a cobra root command. Without a subcommand the root
// starts a REPL; every REPL command and subcommand maps to a route, and the
// guard decides whether it renders or redirects.
//
// Key features:
//   - Register / Login / Logout
//   - Forgot password (reset by email)
//   - Profile view, edit and password change
//   - Static order history with a status filter
//
// See NewRootCmd, App and runREPL for details.
package cli
