// Package snapshot persists and restores the resting book state.
// A snapshot plus the WAL records after its sequence fully determine
// the engine state.
package snapshot

import "time"

type Snapshot struct {
	Seq     uint64
	Created time.Time
	Orders  []OrderEntry
}

// OrderEntry captures one resting order. SeqID is the book's
// time-priority sequence: re-admitting entries in ascending SeqID
// order reproduces the exact queue positions, including orders resting
// behind an all-or-none blocker.
type OrderEntry struct {
	ID    uint64
	SeqID uint64
	Side  int
	Kind  int
	Flags uint8
	Price int64
	Qty   int64 // remaining quantity at snapshot time
}
