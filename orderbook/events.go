package orderbook

// UpdateKind classifies a level update for market-data consumers.
type UpdateKind int

const (
	LevelAdded UpdateKind = iota
	LevelChanged
	LevelDeleted
)

func (k UpdateKind) String() string {
	switch k {
	case LevelAdded:
		return "added"
	case LevelChanged:
		return "changed"
	case LevelDeleted:
		return "deleted"
	}
	return "unknown"
}

// Trade is one execution between an aggressive and a resting order.
// Price is always the resting order's price.
type Trade struct {
	Price       int64  `json:"price"`
	Qty         int64  `json:"qty"`
	AggressorID uint64 `json:"aggressor_id"`
	RestingID   uint64 `json:"resting_id"`
	Seq         uint64 `json:"seq"`
}

// LevelUpdate reports that a price level's aggregate quantity changed.
// Qty is the new aggregate; zero for LevelDeleted.
type LevelUpdate struct {
	Side  Side       `json:"side"`
	Price int64      `json:"price"`
	Qty   int64      `json:"qty"`
	Kind  UpdateKind `json:"kind"`
}

// EventSink consumes book events. Emission is synchronous: for a single
// command, trades arrive in the exact order matches occurred, followed
// by one update per affected level, all before the command returns.
type EventSink interface {
	OnTrade(Trade)
	OnLevelUpdate(LevelUpdate)
}

type nopSink struct{}

func (nopSink) OnTrade(Trade)             {}
func (nopSink) OnLevelUpdate(LevelUpdate) {}

// NopSink discards all events.
var NopSink EventSink = nopSink{}
