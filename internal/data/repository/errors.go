package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/pkg/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// ErrNoAvailability is returned when a ledger decrement cannot be satisfied
// for every night of the range. The whole transaction rolls back; no night
// is partially decremented.
var (
	ErrNoAvailability = errors.New("not enough rooms available")
	// ErrInvalidTransition is returned for illegal booking lifecycle transitions.
	ErrInvalidTransition = errors.New("illegal booking status transition")
	// ErrBookingNotFound is returned when a booking id does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrRoomTypeNotFound is returned when a room type id does not exist.
	ErrRoomTypeNotFound = errors.New("room type not found")
)

// errAlreadyConfirmed signals that a confirm transition found the booking
// already confirmed. Composite payment transactions treat it as a no-op.
var errAlreadyConfirmed = errors.New("booking already confirmed")

// runTx executes fn inside a single transaction.
func runTx(ctx context.Context, db database.PgxIface, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// withTxRetry runs fn in a transaction, retrying the whole transaction a
// bounded number of times on serialization failures and deadlocks. The ledger
// operations are designed to be retry-safe: a rolled-back attempt leaves no
// partial state.
func withTxRetry(ctx context.Context, db database.PgxIface, fn func(tx pgx.Tx) error) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := runTx(ctx, db, fn)
		if isRetryableTxError(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected ||
			pgErr.Code == pgerrcode.LockNotAvailable
	}

	return false
}
