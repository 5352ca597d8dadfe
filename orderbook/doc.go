// Package orderbook implements a single-symbol limit order book and
// price-time-priority matching engine. Each side keeps its price levels
// in a red-black tree; every level holds a FIFO queue of resting
// orders, and an order index gives O(1) cancel and modify by id.
//
// The book is single-writer: commands (Add, Cancel, Modify) run
// synchronously to completion and emit their trade and level-update
// events before returning. Run one Book per symbol; instances share no
// state.
package orderbook
