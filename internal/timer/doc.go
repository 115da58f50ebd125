// Package timer implements the timer state machine and its elapsed-time
// accounting.
//
// A Timer moves through three states:
//
//	stopped --Start--> running --Pause--> paused --Resume--> running
//	running|paused --Stop--> stopped (terminal)
//
// Time is never advanced by a ticking process. ElapsedSeconds holds the
// seconds banked while the timer was not running; while running, the true
// elapsed time is ElapsedSeconds + (now - StartedAt), recomputed on every read.
// Banking happens exactly once per running -> non-running transition.
//
// All operations take "now" explicitly, so the package is deterministic and is
// shared by the server (authoritative state) and the client mirror (local cache).
package timer
