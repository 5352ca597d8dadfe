package orderbook

import (
	"errors"
	"testing"
)

// recorder captures emitted events in arrival order.
type recorder struct {
	trades  []Trade
	updates []LevelUpdate
}

func (r *recorder) OnTrade(t Trade)            { r.trades = append(r.trades, t) }
func (r *recorder) OnLevelUpdate(u LevelUpdate) { r.updates = append(r.updates, u) }

func (r *recorder) reset() {
	r.trades = r.trades[:0]
	r.updates = r.updates[:0]
}

func limit(id uint64, side Side, price, qty int64) *Order {
	return &Order{ID: id, Side: side, Kind: Limit, Price: price, Qty: qty}
}

func market(id uint64, side Side, qty int64) *Order {
	return &Order{ID: id, Side: side, Kind: Market, Qty: qty}
}

func mustAdd(t *testing.T, b *Book, o *Order) {
	t.Helper()
	if err := b.Add(o); err != nil {
		t.Fatalf("add order %d: %v", o.ID, err)
	}
}

func TestLimitMatchEmptiesBook(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 100, 5))
	mustAdd(t, b, limit(2, Ask, 100, 5))

	if b.RestingOrders() != 0 {
		t.Errorf("expected empty book, %d orders resting", b.RestingOrders())
	}
	if b.bids.Size() != 0 || b.asks.Size() != 0 {
		t.Error("expected both level trees empty after full match")
	}
}

func TestPriceTimePriority(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 5))
	mustAdd(t, b, limit(2, Ask, 100, 5))
	mustAdd(t, b, limit(3, Bid, 100, 7))

	if len(rec.trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(rec.trades))
	}
	if rec.trades[0].RestingID != 1 || rec.trades[0].Qty != 5 {
		t.Errorf("first fill should fully consume order 1: %+v", rec.trades[0])
	}
	if rec.trades[1].RestingID != 2 || rec.trades[1].Qty != 2 {
		t.Errorf("second fill should take 2 from order 2: %+v", rec.trades[1])
	}

	o, ok := b.Lookup(2)
	if !ok || o.Remaining() != 3 {
		t.Errorf("order 2 should rest with 3 remaining, got %v", o)
	}
	if _, ok := b.Lookup(1); ok {
		t.Error("order 1 should have been removed after full fill")
	}
}

func TestMarketSweepsLevels(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 101, 3))
	mustAdd(t, b, limit(2, Ask, 102, 5))
	mustAdd(t, b, market(3, Bid, 6))

	if len(rec.trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(rec.trades))
	}
	if rec.trades[0].Price != 101 || rec.trades[0].Qty != 3 {
		t.Errorf("first trade should clear level 101: %+v", rec.trades[0])
	}
	if rec.trades[1].Price != 102 || rec.trades[1].Qty != 3 {
		t.Errorf("second trade should take 3 at 102: %+v", rec.trades[1])
	}

	if lvl := b.asks.FindLevel(101); lvl != nil {
		t.Error("level 101 should be gone")
	}
	if lvl := b.asks.FindLevel(102); lvl == nil || lvl.TotalQty != 2 {
		t.Errorf("level 102 should hold 2 remaining, got %v", lvl)
	}
}

func TestTradesExecuteAtRestingPrice(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 5))
	mustAdd(t, b, limit(2, Bid, 105, 5))

	if len(rec.trades) != 1 || rec.trades[0].Price != 100 {
		t.Fatalf("aggressive bid at 105 must trade at resting 100: %+v", rec.trades)
	}
}

func TestMarketIntoEmptyBook(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	o := market(1, Bid, 5)
	mustAdd(t, b, o)

	if len(rec.trades) != 0 {
		t.Error("no liquidity, no trades")
	}
	if o.Resting() || b.RestingOrders() != 0 {
		t.Error("market remainder must never rest")
	}
}

func TestIOCRemainderDiscarded(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 3))

	ioc := limit(2, Bid, 100, 5)
	ioc.Flags = FlagIOC
	mustAdd(t, b, ioc)

	if len(rec.trades) != 1 || rec.trades[0].Qty != 3 {
		t.Fatalf("IOC should fill the available 3: %+v", rec.trades)
	}
	if b.RestingOrders() != 0 {
		t.Error("IOC remainder must not rest")
	}
}

func TestFOKRejectedWithoutFullFill(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 6))

	fok := limit(2, Bid, 100, 10)
	fok.Flags = FlagFOK
	if err := b.Add(fok); !errors.Is(err, ErrUnfillable) {
		t.Fatalf("expected ErrUnfillable, got %v", err)
	}

	if len(rec.trades) != 0 {
		t.Error("failed FOK must produce zero executions")
	}
	if o, _ := b.Lookup(1); o == nil || o.Remaining() != 6 {
		t.Error("resting liquidity must be untouched by a failed FOK")
	}
}

func TestFOKFillsAcrossLevels(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 4))
	mustAdd(t, b, limit(2, Ask, 101, 6))

	fok := limit(3, Bid, 101, 10)
	fok.Flags = FlagFOK
	mustAdd(t, b, fok)

	if len(rec.trades) != 2 {
		t.Fatalf("FOK spanning two levels should trade twice, got %d", len(rec.trades))
	}
	if b.RestingOrders() != 0 {
		t.Error("book should be empty after FOK full fill")
	}
}

func TestAONRestsWholeWhenUnfillable(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 3))

	aon := limit(2, Bid, 99, 10)
	aon.Flags = FlagAON
	mustAdd(t, b, aon)

	if len(rec.trades) != 0 {
		t.Error("unfillable AON must trade nothing")
	}
	if o, ok := b.Lookup(2); !ok || o.Remaining() != 10 {
		t.Error("AON limit should rest in full")
	}
}

func TestIOCAONDiscardedWhenUnfillable(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 3))

	o := limit(2, Bid, 100, 10)
	o.Flags = FlagIOC | FlagAON
	if err := b.Add(o); !errors.Is(err, ErrUnfillable) {
		t.Fatalf("expected ErrUnfillable, got %v", err)
	}
	if b.RestingOrders() != 1 {
		t.Error("only the original ask should rest")
	}
}

func TestRestingAONBlocksQueue(t *testing.T) {
	rec := &recorder{}
	b := New(rec)

	aon := limit(1, Ask, 100, 10)
	aon.Flags = FlagAON
	mustAdd(t, b, aon)
	mustAdd(t, b, limit(2, Ask, 100, 5))

	// Too small to satisfy the AON head; skipping it would break FIFO.
	mustAdd(t, b, limit(3, Bid, 100, 5))

	if len(rec.trades) != 0 {
		t.Fatalf("blocked queue must produce no trades: %+v", rec.trades)
	}
	if o, ok := b.Lookup(3); !ok || o.Remaining() != 5 {
		t.Error("blocked bid should rest in full")
	}
}

func TestCancelUnblocksAON(t *testing.T) {
	rec := &recorder{}
	b := New(rec)

	aon := limit(1, Ask, 100, 10)
	aon.Flags = FlagAON
	mustAdd(t, b, aon)
	mustAdd(t, b, limit(2, Ask, 100, 5))
	mustAdd(t, b, limit(3, Bid, 100, 5))

	rec.reset()
	if err := b.Cancel(1); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if len(rec.trades) != 1 {
		t.Fatalf("removing the blocker should trigger the latent match, got %d trades", len(rec.trades))
	}
	tr := rec.trades[0]
	if tr.Qty != 5 || tr.Price != 100 {
		t.Errorf("unexpected trade %+v", tr)
	}
	if b.RestingOrders() != 0 {
		t.Error("both remaining orders should have fully matched")
	}
}

func TestAONFillsWhenLiquiditySuffices(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 100, 4))
	mustAdd(t, b, limit(2, Ask, 100, 6))

	aon := limit(3, Bid, 100, 10)
	aon.Flags = FlagAON
	mustAdd(t, b, aon)

	if len(rec.trades) != 2 {
		t.Fatalf("AON with enough liquidity should execute fully, got %d trades", len(rec.trades))
	}
	if b.RestingOrders() != 0 {
		t.Error("book should be empty")
	}
}

func TestCancel(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 100, 5))

	if err := b.Cancel(1); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := b.Lookup(1); ok {
		t.Error("cancelled order still indexed")
	}
	if b.bids.Size() != 0 {
		t.Error("emptied level should be removed from the tree")
	}
	if err := b.Cancel(1); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("second cancel should fail with ErrUnknownOrder, got %v", err)
	}
}

func TestCancelKeepsNonEmptyLevel(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 100, 5))
	mustAdd(t, b, limit(2, Bid, 100, 7))

	if err := b.Cancel(1); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	lvl := b.bids.FindLevel(100)
	if lvl == nil || lvl.TotalQty != 7 || lvl.OrderCount != 1 {
		t.Errorf("level should keep order 2 with qty 7, got %v", lvl)
	}
}

func TestDuplicateID(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 100, 5))
	if err := b.Add(limit(1, Ask, 200, 5)); !errors.Is(err, ErrDuplicateOrder) {
		t.Fatalf("expected ErrDuplicateOrder, got %v", err)
	}
}

func TestInvalidInputs(t *testing.T) {
	b := New(nil)
	if err := b.Add(limit(1, Bid, 100, 0)); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero qty: got %v", err)
	}
	if err := b.Add(limit(1, Bid, 0, 5)); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("zero limit price: got %v", err)
	}
	if err := b.Add(limit(1, Bid, -3, 5)); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("negative limit price: got %v", err)
	}
	if err := b.Modify(99, 5, 100); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("modify unknown: got %v", err)
	}
}

func TestModifyDecreaseKeepsPriority(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 100, 10))
	mustAdd(t, b, limit(2, Bid, 100, 10))

	if err := b.Modify(1, 4, 0); err != nil {
		t.Fatalf("modify: %v", err)
	}

	lvl := b.bids.FindLevel(100)
	if lvl.Head().ID != 1 {
		t.Error("quantity decrease must keep queue position")
	}
	if lvl.TotalQty != 14 {
		t.Errorf("level qty should be 14, got %d", lvl.TotalQty)
	}
	if o, _ := b.Lookup(1); o.Remaining() != 4 {
		t.Errorf("order 1 remaining should be 4, got %d", o.Remaining())
	}
}

func TestModifyIncreaseLosesPriority(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 100, 5))
	mustAdd(t, b, limit(2, Bid, 100, 5))

	if err := b.Modify(1, 8, 0); err != nil {
		t.Fatalf("modify: %v", err)
	}

	lvl := b.bids.FindLevel(100)
	if lvl.Head().ID != 2 {
		t.Error("quantity increase must requeue at the tail")
	}
	if lvl.TotalQty != 13 {
		t.Errorf("level qty should be 13, got %d", lvl.TotalQty)
	}
}

func TestModifyPriceRematches(t *testing.T) {
	rec := &recorder{}
	b := New(rec)
	mustAdd(t, b, limit(1, Ask, 105, 5))
	mustAdd(t, b, limit(2, Bid, 100, 5))

	rec.reset()
	if err := b.Modify(2, 5, 105); err != nil {
		t.Fatalf("modify: %v", err)
	}

	if len(rec.trades) != 1 || rec.trades[0].Price != 105 {
		t.Fatalf("repriced bid should cross and trade at 105: %+v", rec.trades)
	}
	if b.RestingOrders() != 0 {
		t.Error("book should be empty after the rematch")
	}
}

func TestBestPricesAndDepth(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Bid, 99, 5))
	mustAdd(t, b, limit(2, Bid, 100, 3))
	mustAdd(t, b, limit(3, Ask, 101, 2))
	mustAdd(t, b, limit(4, Ask, 103, 4))

	if p, ok := b.BestBid(); !ok || p != 100 {
		t.Errorf("best bid: got %d, %v", p, ok)
	}
	if p, ok := b.BestAsk(); !ok || p != 101 {
		t.Errorf("best ask: got %d, %v", p, ok)
	}

	bids := b.Depth(Bid, 0)
	if len(bids) != 2 || bids[0].Price != 100 || bids[1].Price != 99 {
		t.Errorf("bid depth out of order: %v", bids)
	}
	asks := b.Depth(Ask, 1)
	if len(asks) != 1 || asks[0].Price != 101 || asks[0].Qty != 2 {
		t.Errorf("ask depth truncation wrong: %v", asks)
	}

	// Queries never mutate.
	if b.RestingOrders() != 4 {
		t.Error("depth query mutated the book")
	}
	again := b.Depth(Bid, 0)
	if len(again) != len(bids) {
		t.Error("repeated depth query disagrees")
	}
}

func TestLevelQtyMatchesQueuedOrders(t *testing.T) {
	b := New(nil)
	mustAdd(t, b, limit(1, Ask, 100, 5))
	mustAdd(t, b, limit(2, Ask, 100, 7))
	mustAdd(t, b, limit(3, Bid, 100, 4))

	lvl := b.asks.FindLevel(100)
	var sum int64
	for o := lvl.Head(); o != nil; o = o.Next() {
		sum += o.Remaining()
	}
	if sum != lvl.TotalQty {
		t.Errorf("level aggregate %d != queue sum %d", lvl.TotalQty, sum)
	}
}
