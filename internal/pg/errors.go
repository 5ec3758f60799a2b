package pg

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GlebRadaev/scratchmart/internal/domain"
)

// SQLSTATE codes that mean "lost a race, try again".
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// Classify maps driver failures onto the domain taxonomy. Errors that did not
// come from the database (including domain errors) are returned unchanged.
func Classify(err error) error {
	if err == nil || isClassified(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
		default:
			return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return err
}

// driverError classifies a failure of begin/commit, which is always a storage failure.
func driverError(err error) error {
	classified := Classify(err)
	if isClassified(classified) {
		return classified
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

func isClassified(err error) bool {
	return errors.Is(err, domain.ErrPersistence) || errors.Is(err, domain.ErrConcurrencyConflict)
}
