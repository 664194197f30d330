package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the engine maps to domain errors
const (
	pgCodeUniqueViolation = "23505"
	pgCodeCheckViolation  = "23514"
	pgCodeLockNotAvail    = "55P03"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeCheckViolation
}

// isLockTimeout reports whether err is a lock_timeout expiry; the
// bounded row-lock wait surfaces as domain.ErrBusy.
func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeLockNotAvail
}
