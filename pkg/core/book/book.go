// Package book holds one instrument's resting orders: bids sorted by price
// descending, asks ascending, FIFO among equal prices. A book is owned by a
// single matching goroutine, so it carries no lock.
package book

import (
	"sort"

	"github.com/crocusx/crocus/pkg/core/order"
)

type Book struct {
	instrument string
	bids       side
	asks       side
}

func New(instrument string) *Book {
	return &Book{
		instrument: instrument,
		bids:       side{descending: true},
		asks:       side{},
	}
}

func (b *Book) Instrument() string { return b.instrument }

func (b *Book) side(s order.Side) *side {
	if s == order.Buy {
		return &b.bids
	}
	return &b.asks
}

// Insert places o after the last resting order whose price is at least as
// favorable, preserving FIFO among equal prices.
func (b *Book) Insert(o *order.Order) {
	b.side(o.Side).insert(o)
}

// PeekBest returns the most favorable resting order on s without removing it.
func (b *Book) PeekBest(s order.Side) (*order.Order, bool) {
	return b.side(s).peekBest()
}

// ReduceOrRemoveBest decrements the best order on s by filled, removing it
// once its remaining quantity reaches zero. These two primitives are the only
// mutation paths besides Insert.
func (b *Book) ReduceOrRemoveBest(s order.Side, filled int64) {
	b.side(s).reduceOrRemoveBest(filled)
}

// Depth returns the number of resting orders on s.
func (b *Book) Depth(s order.Side) int {
	return len(b.side(s).orders)
}

type side struct {
	descending bool // bids: best price is the highest
	orders     []*order.Order
}

func (s *side) insert(o *order.Order) {
	i := sort.Search(len(s.orders), func(i int) bool {
		if s.descending {
			return s.orders[i].Price < o.Price
		}
		return s.orders[i].Price > o.Price
	})
	s.orders = append(s.orders, nil)
	copy(s.orders[i+1:], s.orders[i:])
	s.orders[i] = o
}

func (s *side) peekBest() (*order.Order, bool) {
	if len(s.orders) == 0 {
		return nil, false
	}
	return s.orders[0], true
}

func (s *side) reduceOrRemoveBest(filled int64) {
	if len(s.orders) == 0 {
		return
	}
	s.orders[0].Remaining -= filled
	if s.orders[0].Remaining <= 0 {
		s.orders = s.orders[1:]
	}
}
