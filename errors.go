package marketsim

import "errors"

// Errors reported by the engine. They are always wrapped with context, test
// them with errors.Is.
var (
	// ErrInvalidInstrument is returned when an instrument has no symbol.
	ErrInvalidInstrument = errors.New("invalid instrument")
	// ErrInvalidPrice is returned when an instrument is created with a price
	// that is not strictly positive.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidQuantity is returned for negative or fractional trade quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientFunds is returned when a buy costs more than the available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientHoldings is returned when a sell exceeds the held quantity.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrUnknownInstrument    = errors.New("unknown instrument")
	ErrDuplicateInstrument  = errors.New("duplicate instrument")
)
