// Package client contains the client-side transport of the tracker CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the tracker backend: Register/GetSalt/Login, Ping, the timer
//     commands, catalog management and report export.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects an access token via an interceptor, transparently
//     refreshes expired tokens, bounds every call with a timeout and maps
//     gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as ErrUnavailable and ErrUnauthorized;
// ErrLocalDataNotAvailable reports a missing offline login cache.
// Server-side rejections are mapped onto the shared sentinels of package
// common (ErrorNotFound, ErrorValidation, ErrorConflict) so callers can use
// errors.Is regardless of transport.
package client
