package orderbook

import "fmt"

type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Ask {
		return "ask"
	}
	return "bid"
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

type Kind int

const (
	Limit Kind = iota
	Market
)

func (k Kind) String() string {
	if k == Market {
		return "market"
	}
	return "limit"
}

// Flags carry the execution constraints of an order.
type Flags uint8

const (
	// FlagIOC executes what is immediately possible and discards the rest.
	FlagIOC Flags = 1 << iota
	// FlagFOK executes the full quantity immediately or not at all.
	FlagFOK
	// FlagAON forbids partial execution in any form.
	FlagAON
)

func (f Flags) Has(x Flags) bool { return f&x != 0 }

type Status int

const (
	Active Status = iota
	Inactive
)

// Order is the canonical state of one order. While resting it is linked
// into its price level's FIFO queue; the level pointer and the intrusive
// links are the O(1) locator used by cancel and modify.
type Order struct {
	ID     uint64
	Side   Side
	Kind   Kind
	Flags  Flags
	Price  int64 // fixed-point ticks; zero for market orders
	Qty    int64 // original quantity
	Filled int64
	SeqID  uint64 // time-priority sequence, assigned when the order rests
	Status Status

	level *PriceLevel
	next  *Order
	prev  *Order
}

// Remaining returns the unexecuted quantity.
func (o *Order) Remaining() int64 { return o.Qty - o.Filled }

// Resting reports whether the order currently sits in a level queue.
func (o *Order) Resting() bool { return o.level != nil }

// Next returns the order behind o in its level queue (lower priority).
func (o *Order) Next() *Order { return o.next }

func (o *Order) Reset() { *o = Order{} }

func (o *Order) String() string {
	return fmt.Sprintf("order{id=%d %s %s price=%d qty=%d filled=%d seq=%d}",
		o.ID, o.Side, o.Kind, o.Price, o.Qty, o.Filled, o.SeqID)
}

// immediateOnly reports whether any unfilled remainder must be
// discarded instead of rested.
func (o *Order) immediateOnly() bool {
	return o.Kind == Market || o.Flags.Has(FlagIOC|FlagFOK)
}
