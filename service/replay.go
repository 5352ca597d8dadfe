package service

import (
	"log"

	"vela/api/pb"
	"vela/orderbook"
	"vela/snapshot"
	"vela/wal"
)

// Recover rebuilds the book from the latest snapshot plus the WAL
// records after its sequence. It must run before the service accepts
// traffic. Replayed commands emit no external events, and rejected
// commands replay as the same rejections, so recovery is deterministic.
func (s *OrderService) Recover(walDir, snapDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorder.muted = true
	defer func() { s.recorder.muted = false }()

	snapSeq, err := snapshot.Load(snapDir, s.book)
	if err != nil {
		return err
	}

	lastSeq, err := wal.Replay(walDir, func(rec *wal.Record) error {
		if rec.Seq <= snapSeq {
			return nil
		}
		var cmd pb.Command
		if err := pb.Unmarshal(rec.Data, &cmd); err != nil {
			return err
		}
		s.apply(rec.Type, &cmd)
		return nil
	})
	if err != nil {
		return err
	}

	if lastSeq < snapSeq {
		lastSeq = snapSeq
	}
	s.cmdSeq.Reset(lastSeq)

	log.Printf("[service] recovery complete: seq=%d resting=%d", lastSeq, s.book.RestingOrders())
	return nil
}

func (s *OrderService) apply(t wal.RecordType, cmd *pb.Command) {
	switch t {
	case wal.RecordSubmit:
		o := &orderbook.Order{
			ID:    cmd.Id,
			Side:  orderbook.Side(cmd.Side),
			Kind:  orderbook.Kind(cmd.Kind),
			Flags: orderbook.Flags(cmd.Flags),
			Price: cmd.Price,
			Qty:   cmd.Qty,
		}
		_ = s.book.Add(o)
	case wal.RecordCancel:
		_ = s.book.Cancel(cmd.Id)
	case wal.RecordModify:
		_ = s.book.Modify(cmd.Id, cmd.Qty, cmd.Price)
	}
}
