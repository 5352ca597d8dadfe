// Package memory provides allocation helpers for the order hot path.
package memory

import "sync"

// Pool is a typed object pool. The order entry path allocates one
// Order per command; pooling keeps the steady state allocation-free
// for orders that never rest.
type Pool[T any] struct {
	p *sync.Pool
}

func NewPool[T any](ctor func() *T) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
	}
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
