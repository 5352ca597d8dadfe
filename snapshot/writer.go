package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sort"
	"time"

	"vela/orderbook"
)

type Writer struct {
	Dir string
}

// Write captures all resting orders at the given command sequence. The
// file is written to a temp name and renamed, so a crash mid-write
// never clobbers the previous snapshot.
func (w *Writer) Write(seq uint64, book *orderbook.Book) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	s := Snapshot{
		Seq:     seq,
		Created: time.Now(),
		Orders:  make([]OrderEntry, 0, 1024),
	}
	book.EachResting(func(o *orderbook.Order) {
		s.Orders = append(s.Orders, OrderEntry{
			ID:    o.ID,
			SeqID: o.SeqID,
			Side:  int(o.Side),
			Kind:  int(o.Kind),
			Flags: uint8(o.Flags),
			Price: o.Price,
			Qty:   o.Remaining(),
		})
	})
	sort.Slice(s.Orders, func(i, j int) bool {
		return s.Orders[i].SeqID < s.Orders[j].SeqID
	})

	tmp := filepath.Join(w.Dir, "snapshot.bin.tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(&s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(w.Dir, "snapshot.bin"))
}
