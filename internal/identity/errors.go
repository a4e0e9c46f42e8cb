package identity

import (
	"context"
	"errors"
	"fmt"

	"agrifields/internal/domain"
)

var (
	// ErrNotAdmin is returned by LoginAdmin when the account is not an admin.
	// It matches domain.ErrInvalidCredentials.
	ErrNotAdmin = fmt.Errorf("%w: access denied: not an admin account", domain.ErrInvalidCredentials)
	// ErrAlreadySubscribed is returned when a client already has a live subscription.
	ErrAlreadySubscribed = errors.New("identity: session subscription already active")
)

// Classify folds err into the closed set of user-facing errors. Errors that
// already belong to the set pass through unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrUnknown):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return domain.ErrUnavailable
	default:
		return domain.ErrUnknown
	}
}
