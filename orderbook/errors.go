package orderbook

import "errors"

// Sentinel errors returned by book commands. Rejections are local and
// synchronous: a command that returns an error has made no state change
// and emitted no events.
var (
	ErrDuplicateOrder  = errors.New("duplicate order id")
	ErrUnknownOrder    = errors.New("unknown order id")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")

	// ErrUnfillable rejects a fill-or-kill or immediate all-or-none
	// order that current opposite liquidity cannot fully satisfy.
	ErrUnfillable = errors.New("order cannot be fully filled")
)
