package distribute

import (
	"errors"
	"fmt"
	"math/big"

	"poltools/internal/ethunit"
)

// ErrInvalidAmount is returned before any network call when the per-wallet
// amount is not positive.
var ErrInvalidAmount = errors.New("amount must be greater than 0 POL")

// ErrNoRecipients is the configuration error for an empty recipient source.
var ErrNoRecipients = errors.New("no recipient addresses")

// InvalidAddressError aborts the whole batch before anything is sent; a
// malformed recipient would leave the distribution intent undefined.
type InvalidAddressError struct {
	Index   int
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("recipient %d: invalid address %q", e.Index+1, e.Address)
}

// InsufficientBalanceError is computed up front, never discovered mid-batch.
type InsufficientBalanceError struct {
	Need *big.Int
	Have *big.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %s POL but have %s POL",
		ethunit.FormatPOL(e.Need), ethunit.FormatPOL(e.Have))
}
