// Package service coordinates the matching engine with its durability
// and publication collaborators. OrderService is the only write entry
// point: commands are logged to the WAL, applied to the book, and their
// events staged for delivery, all within one synchronous call.
package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"vela/api/pb"
	"vela/marketdata"
	"vela/memory"
	"vela/orderbook"
	"vela/outbox"
	"vela/sequence"
	"vela/wal"
)

type OrderService struct {
	// mu serializes commands, queries, and snapshots: the book itself
	// is strictly single-writer.
	mu sync.Mutex

	book     *orderbook.Book
	pool     *memory.Pool[orderbook.Order]
	cmdSeq   *sequence.Sequencer
	wal      *wal.WAL
	outbox   *outbox.Outbox
	levels   *marketdata.Publisher
	recorder *eventRecorder
}

// New wires the service. outbox and levels may be nil to disable trade
// staging and level publication (standalone or test deployments).
func New(w *wal.WAL, ob *outbox.Outbox, levels *marketdata.Publisher) *OrderService {
	s := &OrderService{
		pool:   memory.NewPool(func() *orderbook.Order { return &orderbook.Order{} }),
		cmdSeq: sequence.New(0),
		wal:    w,
		outbox: ob,
		levels: levels,
	}
	s.recorder = &eventRecorder{svc: s}
	s.book = orderbook.New(s.recorder)
	return s
}

// eventRecorder receives book events synchronously. Trades go to the
// durable outbox; level updates are published best-effort. During
// recovery the recorder is muted so replayed commands emit nothing.
type eventRecorder struct {
	svc   *OrderService
	muted bool
}

func (r *eventRecorder) OnTrade(t orderbook.Trade) {
	if r.muted || r.svc.outbox == nil {
		return
	}
	payload, err := json.Marshal(t)
	if err != nil {
		log.Printf("[service] trade encode failed: %v", err)
		return
	}
	if err := r.svc.outbox.Put(t.Seq, payload); err != nil {
		log.Printf("[service] outbox put failed: %v", err)
	}
}

func (r *eventRecorder) OnLevelUpdate(u orderbook.LevelUpdate) {
	if r.muted || r.svc.levels == nil {
		return
	}
	if err := r.svc.levels.Publish(context.Background(), u); err != nil {
		log.Printf("[service] level publish failed: %v", err)
	}
}

//
// ─── Commands ───────────────────────────────────────────────
//

// SubmitResult reports the outcome of an accepted order.
type SubmitResult struct {
	Seq       uint64
	Filled    int64
	Remaining int64
	Resting   bool
}

func (s *OrderService) Submit(id uint64, side orderbook.Side, kind orderbook.Kind, flags orderbook.Flags, price, qty int64) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logCommand(wal.RecordSubmit, &pb.Command{
		Type:  pb.CommandSubmit,
		Id:    id,
		Side:  uint32(side),
		Kind:  uint32(kind),
		Flags: uint32(flags),
		Price: price,
		Qty:   qty,
	}); err != nil {
		return SubmitResult{}, err
	}

	o := s.pool.Get()
	o.Reset()
	o.ID = id
	o.Side = side
	o.Kind = kind
	o.Flags = flags
	o.Price = price
	o.Qty = qty

	if err := s.book.Add(o); err != nil {
		s.pool.Put(o)
		return SubmitResult{}, err
	}

	res := SubmitResult{
		Seq:       o.SeqID,
		Filled:    o.Filled,
		Remaining: o.Remaining(),
		Resting:   o.Resting(),
	}
	if !o.Resting() {
		// The book holds no reference to orders that never rested.
		s.pool.Put(o)
	}
	return res, nil
}

func (s *OrderService) Cancel(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logCommand(wal.RecordCancel, &pb.Command{
		Type: pb.CommandCancel,
		Id:   id,
	}); err != nil {
		return err
	}
	return s.book.Cancel(id)
}

func (s *OrderService) Modify(id uint64, qty, price int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logCommand(wal.RecordModify, &pb.Command{
		Type:  pb.CommandModify,
		Id:    id,
		Qty:   qty,
		Price: price,
	}); err != nil {
		return err
	}
	return s.book.Modify(id, qty, price)
}

func (s *OrderService) logCommand(t wal.RecordType, cmd *pb.Command) error {
	seq := s.cmdSeq.Next()
	if s.wal == nil {
		return nil
	}
	payload, err := pb.Marshal(cmd)
	if err != nil {
		return err
	}
	return s.wal.Append(wal.NewRecord(t, seq, payload))
}

//
// ─── Queries ────────────────────────────────────────────────
//

func (s *OrderService) Depth(side orderbook.Side, levels int) []orderbook.LevelEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Depth(side, levels)
}

func (s *OrderService) BestBid() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BestBid()
}

func (s *OrderService) BestAsk() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BestAsk()
}
