package ledger

import "github.com/pkg/errors"

var (
	ErrInvalidLedgerConfig  = errors.New("invalid ledger config")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidPrice         = errors.New("price must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient bitcoin holdings")
	ErrRestoreFailure       = errors.New("failed to restore portfolio")
)

// IsRejection reports whether err is a validation failure that left the
// ledger untouched, as opposed to a storage problem.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientHoldings)
}
