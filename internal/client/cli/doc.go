// Package cli provides the interactive standup command-line client.
//
// It drives the ledger services in-process against the configured store.
// A session starts anonymous; "login <username>" or "register" picks the
// user the remaining commands act for.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command table.
package cli
