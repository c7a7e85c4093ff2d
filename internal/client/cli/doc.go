// Package cli provides the interactive stockkeeper console.
//
// It wires configuration, storage, the account services and the quote client
// into a REPL. Typical flow: sign up once, log in (up to the configured
// number of attempts, with a password reset offered on lockout), then query
// quotes by company name. Every quote shown is recorded in the activity log.
//
// Commands:
//   - signup / login / reset / logout
//   - quote [company] / history
//   - help / exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See App and runREPL for details.
package cli
