package sequence

import "sync/atomic"

// Sequencer issues strictly monotonic sequence numbers. Each engine
// instance owns its own Sequencer, so running several symbols side by
// side never couples their sequence streams.
type Sequencer struct {
	last atomic.Uint64
}

// New creates a sequencer that will issue numbers starting after start.
// A fresh engine passes 0; a recovered engine passes the last sequence
// observed during replay.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current returns the last issued sequence number.
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}

// Reset rewires the sequencer to continue after v. Only used after
// WAL replay.
func (s *Sequencer) Reset(v uint64) {
	s.last.Store(v)
}
