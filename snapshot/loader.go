package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"vela/orderbook"
)

// Load restores resting orders into an empty book and returns the
// snapshot's command sequence. A missing snapshot is not an error: the
// book simply starts empty at sequence zero.
//
// Entries are re-admitted in time-priority order, which reproduces the
// original queues without producing any trades.
func Load(dir string, book *orderbook.Book) (uint64, error) {
	f, err := os.Open(filepath.Join(dir, "snapshot.bin"))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return 0, err
	}

	for _, e := range s.Orders {
		o := &orderbook.Order{
			ID:    e.ID,
			Side:  orderbook.Side(e.Side),
			Kind:  orderbook.Kind(e.Kind),
			Flags: orderbook.Flags(e.Flags),
			Price: e.Price,
			Qty:   e.Qty,
		}
		if err := book.Add(o); err != nil {
			return 0, err
		}
	}

	return s.Seq, nil
}
