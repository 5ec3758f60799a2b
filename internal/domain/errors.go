package domain

import "errors"

// User-facing rejections. Never retried.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAlreadyWinner       = errors.New("user already holds a winner number")
)

// ErrConfiguration marks a deployment misconfiguration (e.g. a malformed prize table).
var ErrConfiguration = errors.New("configuration error")

// Transient storage failures. Safe to retry because every operation is atomic.
var (
	ErrPersistence         = errors.New("persistence error")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// IsTransient reports whether the operation may be retried by the caller.
func IsTransient(err error) bool {
	return errors.Is(err, ErrPersistence) || errors.Is(err, ErrConcurrencyConflict)
}

// IsUserFacing reports whether err is an expected rejection of the request
// rather than a failure of the system.
func IsUserFacing(err error) bool {
	for _, target := range []error{
		ErrInsufficientBalance, ErrAlreadyCheckedIn, ErrUserNotFound,
		ErrUserAlreadyExists, ErrInvalidCredentials, ErrAlreadyWinner,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
