package orderbook

import "fmt"

// PriceLevel aggregates all resting orders at one exact price on one
// side. The queue is a doubly-linked FIFO: head is the oldest order and
// matches first, new orders are appended at the tail. TotalQty always
// equals the sum of remaining quantities of the queued orders.
type PriceLevel struct {
	Price      int64
	Side       Side
	TotalQty   int64
	OrderCount int

	head *Order
	tail *Order
}

// Head returns the order with the best time priority at this level.
func (p *PriceLevel) Head() *Order { return p.head }

func (p *PriceLevel) Empty() bool { return p.head == nil }

// Enqueue appends o at the tail, giving it the lowest priority within
// the level. Existing orders are never disturbed.
func (p *PriceLevel) Enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	o.level = p
	p.TotalQty += o.Remaining()
	p.OrderCount++
}

// Unlink removes o from the queue by its links, without scanning.
func (p *PriceLevel) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	p.TotalQty -= o.Remaining()
	p.OrderCount--
	o.level = nil
	o.next = nil
	o.prev = nil
}

// Reduce lowers the aggregate by delta after an in-place fill or size
// reduction of a queued order.
func (p *PriceLevel) Reduce(delta int64) {
	p.TotalQty -= delta
}

func (p *PriceLevel) String() string {
	return fmt.Sprintf("level{%s %d qty=%d orders=%d}", p.Side, p.Price, p.TotalQty, p.OrderCount)
}
