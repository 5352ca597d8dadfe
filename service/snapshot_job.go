package service

import (
	"context"
	"log"
	"time"

	"vela/snapshot"
)

// StartSnapshotJob periodically persists the resting book and truncates
// the WAL and outbox behind it. The write happens under the service
// mutex, so each snapshot is a consistent point-in-time view.
func (s *OrderService) StartSnapshotJob(ctx context.Context, dir string, interval time.Duration) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.snapshotOnce(w)
			}
		}
	}()
}

func (s *OrderService) snapshotOnce(w *snapshot.Writer) {
	s.mu.Lock()
	seq := s.cmdSeq.Current()
	err := w.Write(seq, s.book)
	if err == nil && s.wal != nil {
		err = s.wal.TruncateBefore(seq)
	}
	s.mu.Unlock()
	if err != nil {
		log.Printf("[service] snapshot failed: %v", err)
		return
	}

	if s.outbox != nil {
		if err := s.outbox.TruncateAcked(); err != nil {
			log.Printf("[service] outbox truncate failed: %v", err)
		}
	}
}
