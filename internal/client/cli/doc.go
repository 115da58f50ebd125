// Package cli provides the interactive time tracker command-line client.
//
// It wires configuration, the local SQLite mirror, the API client and an
// interactive REPL that keeps working while the server is unreachable:
// timer commands are applied locally and queued until connectivity returns.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, mirror.Runner and runREPL for details.
package cli
