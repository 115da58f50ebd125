package dbx

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/gophtracker/internal/common"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
)

// retryBase is the first backoff step of WithTxRetry. Tests shrink it.
var retryBase = 25 * time.Millisecond

// IsRetryable reports whether err is transient contention that a fresh
// transaction may succeed on: serialization failures, deadlocks and a lost
// race on the one-active-timer-per-user guard.
func IsRetryable(err error) bool {
	if errors.Is(err, common.ErrActiveTimerExists) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return true
		}
	}
	return false
}

// IsUniqueViolation reports whether err is a unique violation of the given
// constraint (any constraint when name is empty).
func IsUniqueViolation(err error, name string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlStateUniqueViolation {
		return false
	}
	return name == "" || pgErr.ConstraintName == name
}

// WithTxRetry runs fn in a transaction like WithTx and starts over with a new
// transaction when it fails with a retryable error. At most attempts
// transactions are tried; the last error is returned as is.
func WithTxRetry(ctx context.Context, db *sql.DB, opts *sql.TxOptions, attempts int, fn func(ctx context.Context, tx DBTX) error) error {
	if attempts < 1 {
		attempts = 1
	}

	b := retry.NewExponential(retryBase)
	b = retry.WithJitterPercent(20, b)
	b = retry.WithMaxRetries(uint64(attempts-1), b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := WithTx(ctx, db, opts, fn)
		if err != nil && IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
