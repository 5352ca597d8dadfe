package orderbook

import (
	"fmt"

	"vela/sequence"
)

// Book is the matching engine for one symbol. It owns both level
// indexes, the order index, and the time-priority sequencer, and is
// strictly single-writer: one command runs to completion, emitting its
// events synchronously, before the next is accepted.
type Book struct {
	bids *RBTree
	asks *RBTree

	// order index: present iff the order currently rests.
	orders map[uint64]*Order

	seq  *sequence.Sequencer
	sink EventSink

	// levels touched by the in-flight command, in touch order.
	touched []levelTouch
}

type levelTouch struct {
	side       Side
	price      int64
	wasPresent bool
	prevQty    int64
}

// LevelEntry is one (price, aggregate quantity) pair of a depth snapshot.
type LevelEntry struct {
	Price int64
	Qty   int64
}

// New creates an empty book publishing events to sink. A nil sink
// discards events.
func New(sink EventSink) *Book {
	if sink == nil {
		sink = NopSink
	}
	return &Book{
		bids:    NewRBTree(Bid),
		asks:    NewRBTree(Ask),
		orders:  make(map[uint64]*Order),
		seq:     sequence.New(0),
		sink:    sink,
		touched: make([]levelTouch, 0, 8),
	}
}

func (b *Book) tree(side Side) *RBTree {
	if side == Bid {
		return b.bids
	}
	return b.asks
}

//
// ─── Commands ───────────────────────────────────────────────
//

// Add admits an incoming order: it is matched against the opposite side
// under price-time priority and any remainder rests, is discarded, or
// causes rejection depending on kind and flags. On error the book is
// unchanged and no events are emitted. The book retains o if it rests.
func (b *Book) Add(o *Order) error {
	if o.Qty <= 0 {
		return ErrInvalidQuantity
	}
	if o.Kind == Limit && o.Price <= 0 {
		return ErrInvalidPrice
	}
	if o.Kind == Market {
		o.Price = 0
	}
	if _, ok := b.orders[o.ID]; ok {
		return ErrDuplicateOrder
	}

	o.Filled = 0
	o.Status = Active

	b.touched = b.touched[:0]
	if err := b.admit(o); err != nil {
		return err
	}
	b.matchBook()
	b.flushLevelUpdates()
	b.assertUncrossed()
	return nil
}

// admit runs the flag look-ahead, the crossing loop, and remainder
// placement. The level-update flush is left to the caller so that
// cancel-then-add modifies report all affected levels in one batch.
func (b *Book) admit(o *Order) error {
	if o.Flags.Has(FlagFOK | FlagAON) {
		// Look-ahead over opposite liquidity before any fill, so a
		// failed full-fill order produces zero executions.
		full := b.fillable(o) >= o.Remaining()
		if !full {
			if o.immediateOnly() {
				return ErrUnfillable
			}
			// AON limit order: rest whole, zero trades.
			b.rest(o)
			return nil
		}
	}

	b.match(o)

	if o.Remaining() == 0 {
		o.Status = Inactive
		return nil
	}
	if o.immediateOnly() {
		// Market and IOC remainders are discarded, never queued.
		o.Status = Inactive
		return nil
	}
	b.rest(o)
	return nil
}

// Cancel removes a resting order. The affected level reports a Changed
// update, or Deleted if the order was its last.
func (b *Book) Cancel(id uint64) error {
	o, ok := b.orders[id]
	if !ok {
		return ErrUnknownOrder
	}
	b.touched = b.touched[:0]
	b.remove(o)
	// Removing an all-or-none blocker can expose a latent cross.
	b.matchBook()
	b.flushLevelUpdates()
	b.assertUncrossed()
	return nil
}

// Modify changes a resting order's quantity and, optionally, its price
// (newPrice == 0 keeps the price unchanged). A pure quantity decrease
// at an unchanged price is applied in place and preserves the order's
// queue position. Any price change or quantity increase is executed as
// cancel-then-add: the order loses its time priority and is re-matched
// exactly like a fresh admission.
func (b *Book) Modify(id uint64, newQty, newPrice int64) error {
	if newQty <= 0 {
		return ErrInvalidQuantity
	}
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	o, ok := b.orders[id]
	if !ok {
		return ErrUnknownOrder
	}

	price := newPrice
	if price == 0 {
		price = o.Price
	}

	if price == o.Price && newQty <= o.Remaining() {
		delta := o.Remaining() - newQty
		if delta == 0 {
			return nil
		}
		b.touched = b.touched[:0]
		b.touch(o.level)
		o.Qty -= delta
		o.level.Reduce(delta)
		// A shrunk all-or-none order may now be fully matchable.
		b.matchBook()
		b.flushLevelUpdates()
		b.assertUncrossed()
		return nil
	}

	b.touched = b.touched[:0]
	b.remove(o)

	o.Price = price
	o.Qty = newQty
	o.Filled = 0
	o.Status = Active
	o.SeqID = 0

	err := b.admit(o)
	b.matchBook()
	b.flushLevelUpdates()
	b.assertUncrossed()
	return err
}

//
// ─── Queries ────────────────────────────────────────────────
//

// BestBid returns the highest resting bid price.
func (b *Book) BestBid() (int64, bool) {
	if lvl := b.bids.BestLevel(); lvl != nil {
		return lvl.Price, true
	}
	return 0, false
}

// BestAsk returns the lowest resting ask price.
func (b *Book) BestAsk() (int64, bool) {
	if lvl := b.asks.BestLevel(); lvl != nil {
		return lvl.Price, true
	}
	return 0, false
}

// Depth returns up to levels (price, aggregate) pairs from the best
// price outward. levels <= 0 returns the whole side. Depth never
// mutates the book.
func (b *Book) Depth(side Side, levels int) []LevelEntry {
	out := []LevelEntry{}
	n := 0
	b.tree(side).ForEachBestFirst(func(lvl *PriceLevel) bool {
		out = append(out, LevelEntry{Price: lvl.Price, Qty: lvl.TotalQty})
		n++
		return levels <= 0 || n < levels
	})
	return out
}

// Lookup returns the resting order with the given id.
func (b *Book) Lookup(id uint64) (*Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// RestingOrders returns the number of orders currently in the book.
func (b *Book) RestingOrders() int { return len(b.orders) }

// EachResting visits every resting order in priority order: bids from
// the best level down, then asks from the best level up, FIFO within
// each level. Used for snapshots.
func (b *Book) EachResting(visit func(*Order)) {
	walk := func(t *RBTree) {
		t.ForEachBestFirst(func(lvl *PriceLevel) bool {
			for o := lvl.Head(); o != nil; o = o.Next() {
				visit(o)
			}
			return true
		})
	}
	walk(b.bids)
	walk(b.asks)
}

//
// ─── Matching ───────────────────────────────────────────────
//

// crosses reports whether a level at price is matchable by o.
func crosses(o *Order, price int64) bool {
	if o.Kind == Market {
		return true
	}
	if o.Side == Bid {
		return price <= o.Price
	}
	return price >= o.Price
}

// match runs the crossing loop: while the aggressor has remaining
// quantity and the opposite best level satisfies its limit, fill
// against the head of that level's queue. The execution price is
// always the resting order's price.
func (b *Book) match(o *Order) {
	opp := b.tree(o.Side.Opposite())
	for o.Remaining() > 0 {
		best := opp.BestLevel()
		if best == nil || !crosses(o, best.Price) {
			break
		}

		head := best.Head()
		qty := min(o.Remaining(), head.Remaining())
		if head.Flags.Has(FlagAON) && qty < head.Remaining() {
			// A resting all-or-none order is never partially filled.
			// It also blocks the queue behind it: skipping it would
			// violate time priority.
			break
		}

		b.touch(best)
		o.Filled += qty
		head.Filled += qty
		best.Reduce(qty)

		b.sink.OnTrade(Trade{
			Price:       best.Price,
			Qty:         qty,
			AggressorID: o.ID,
			RestingID:   head.ID,
			Seq:         b.seq.Next(),
		})

		if head.Remaining() == 0 {
			b.remove(head)
		}
	}
}

// matchBook trades off overlapping best levels left behind by an
// all-or-none blocker. The aggressive crossing loop never leaves a
// plain cross, so this only executes after a command unblocks the
// front of a queue (cancel of the blocker, or a quantity decrease that
// makes it fully matchable). The earlier of the two head orders sets
// the execution price and is reported as the resting side.
func (b *Book) matchBook() {
	for {
		bb := b.bids.BestLevel()
		ba := b.asks.BestLevel()
		if bb == nil || ba == nil || bb.Price < ba.Price {
			return
		}

		bh, ah := bb.Head(), ba.Head()
		qty := min(bh.Remaining(), ah.Remaining())
		if bh.Flags.Has(FlagAON) && qty < bh.Remaining() {
			return
		}
		if ah.Flags.Has(FlagAON) && qty < ah.Remaining() {
			return
		}

		maker, taker := bh, ah
		if ah.SeqID < bh.SeqID {
			maker, taker = ah, bh
		}

		b.touch(bb)
		b.touch(ba)
		bh.Filled += qty
		ah.Filled += qty
		bb.Reduce(qty)
		ba.Reduce(qty)

		b.sink.OnTrade(Trade{
			Price:       maker.Price,
			Qty:         qty,
			AggressorID: taker.ID,
			RestingID:   maker.ID,
			Seq:         b.seq.Next(),
		})

		if bh.Remaining() == 0 {
			b.remove(bh)
		}
		if ah.Remaining() == 0 {
			b.remove(ah)
		}
	}
}

// fillable computes the quantity o could execute right now. It mirrors
// the crossing loop exactly, walking eligible opposite levels best
// first and each queue in FIFO order, and stopping at a resting
// all-or-none blocker, so that a positive full-fill verdict is always
// realized by the subsequent match.
func (b *Book) fillable(o *Order) int64 {
	need := o.Remaining()
	var have int64
	b.tree(o.Side.Opposite()).ForEachBestFirst(func(lvl *PriceLevel) bool {
		if !crosses(o, lvl.Price) {
			return false
		}
		for r := lvl.Head(); r != nil && have < need; r = r.Next() {
			take := min(need-have, r.Remaining())
			if r.Flags.Has(FlagAON) && take < r.Remaining() {
				return false
			}
			have += take
		}
		return have < need
	})
	return have
}

//
// ─── Book keeping ───────────────────────────────────────────
//

// rest queues the order remainder, assigning its time-priority
// sequence, and registers it in the order index.
func (b *Book) rest(o *Order) {
	lvl, created := b.tree(o.Side).UpsertLevel(o.Price)
	if created {
		b.touchNew(o.Side, o.Price)
	} else {
		b.touch(lvl)
	}
	o.SeqID = b.seq.Next()
	lvl.Enqueue(o)
	b.orders[o.ID] = o
}

// remove erases a resting order, collapsing its level if emptied.
func (b *Book) remove(o *Order) {
	lvl := o.level
	b.touch(lvl)
	lvl.Unlink(o)
	delete(b.orders, o.ID)
	o.Status = Inactive
	if lvl.Empty() {
		b.tree(lvl.Side).DeleteLevel(lvl.Price)
	}
}

// touch records a level's pre-command state the first time the
// in-flight command mutates it.
func (b *Book) touch(lvl *PriceLevel) {
	for _, t := range b.touched {
		if t.side == lvl.Side && t.price == lvl.Price {
			return
		}
	}
	b.touched = append(b.touched, levelTouch{
		side:       lvl.Side,
		price:      lvl.Price,
		wasPresent: true,
		prevQty:    lvl.TotalQty,
	})
}

func (b *Book) touchNew(side Side, price int64) {
	for _, t := range b.touched {
		if t.side == side && t.price == price {
			return
		}
	}
	b.touched = append(b.touched, levelTouch{side: side, price: price})
}

// flushLevelUpdates emits one update per touched level whose aggregate
// actually changed, after all trades of the command.
func (b *Book) flushLevelUpdates() {
	for _, t := range b.touched {
		lvl := b.tree(t.side).FindLevel(t.price)
		switch {
		case lvl == nil && t.wasPresent:
			b.sink.OnLevelUpdate(LevelUpdate{
				Side: t.side, Price: t.price, Qty: 0, Kind: LevelDeleted,
			})
		case lvl == nil:
			// Created and emptied within one command: never observable.
		case !t.wasPresent:
			b.sink.OnLevelUpdate(LevelUpdate{
				Side: t.side, Price: t.price, Qty: lvl.TotalQty, Kind: LevelAdded,
			})
		case lvl.TotalQty != t.prevQty:
			b.sink.OnLevelUpdate(LevelUpdate{
				Side: t.side, Price: t.price, Qty: lvl.TotalQty, Kind: LevelChanged,
			})
		}
	}
	b.touched = b.touched[:0]
}

// assertUncrossed enforces the book invariant between commands:
// best bid < best ask, or a side is empty. Overlapping prices are
// tolerated only while an all-or-none head blocks the trade; anything
// else indicates an engine bug, not bad input, so it is fatal.
func (b *Book) assertUncrossed() {
	bb := b.bids.BestLevel()
	ba := b.asks.BestLevel()
	if bb == nil || ba == nil || bb.Price < ba.Price {
		return
	}
	bh, ah := bb.Head(), ba.Head()
	qty := min(bh.Remaining(), ah.Remaining())
	if bh.Flags.Has(FlagAON) && qty < bh.Remaining() {
		return
	}
	if ah.Flags.Has(FlagAON) && qty < ah.Remaining() {
		return
	}
	panic(fmt.Sprintf("orderbook: crossed book after command: bid %d >= ask %d", bb.Price, ba.Price))
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
