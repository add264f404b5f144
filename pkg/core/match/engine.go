// Package match implements per-instrument price-time-priority matching over
// a batch of validated orders. One engine owns one instrument's book and
// pending list end to end; the only shared object it touches is the event
// sink.
package match

import (
	"go.uber.org/zap"

	"github.com/crocusx/crocus/pkg/core/book"
	"github.com/crocusx/crocus/pkg/core/order"
)

// Submitter is the shared event sink (the sequenced output registry).
type Submitter interface {
	Submit(*order.Event)
}

// Stamper supplies the opaque transaction-time tag for each event.
type Stamper interface {
	Stamp() string
}

type Engine struct {
	instrument string
	book       *book.Book
	out        Submitter
	stamp      Stamper
	log        *zap.SugaredLogger

	trades int
}

func New(instrument string, out Submitter, stamp Stamper, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		instrument: instrument,
		book:       book.New(instrument),
		out:        out,
		stamp:      stamp,
		log:        log,
	}
}

// Run matches the instrument's pending orders strictly in origin order.
// Processing order is what makes the drained report deterministic, so the
// caller must hand the slice over already sorted by origin.
func (e *Engine) Run(pending []*order.Order) {
	for _, o := range pending {
		e.process(o)
	}
	e.log.Infow("instrument_done",
		"instrument", e.instrument,
		"orders", len(pending),
		"trades", e.trades,
		"resting_bids", e.book.Depth(order.Buy),
		"resting_asks", e.book.Depth(order.Sell))
}

// sequencer hands out the ordinal chain of one taker order. Every event
// emitted while that order is active, maker events included, takes the next
// ordinal, so decomposition of order N never sorts past order N+1.
type sequencer struct {
	origin uint64
	next   uint32
}

func (s *sequencer) key() order.Key {
	k := order.Key{Origin: s.origin, Ordinal: s.next}
	s.next++
	return k
}

func (e *Engine) process(o *order.Order) {
	seq := &sequencer{origin: o.Origin}
	opp := o.Side.Opposite()

	if best, ok := e.book.PeekBest(opp); !ok || !crosses(o, best) {
		e.emit(o, order.StatusNew, o.Remaining, o.Price, seq)
		e.book.Insert(o)
		return
	}

	for o.Remaining > 0 {
		best, ok := e.book.PeekBest(opp)
		if !ok || !crosses(o, best) {
			break
		}

		// Trade executes at the resting order's price. The taker's event is
		// emitted before the maker's within one crossing step.
		price := best.Price
		e.trades++
		switch {
		case best.Remaining > o.Remaining:
			traded := o.Remaining
			e.emit(o, order.StatusFill, traded, price, seq)
			e.emit(best, order.StatusPartialFill, traded, price, seq)
			e.book.ReduceOrRemoveBest(opp, traded)
			o.Remaining = 0

		case best.Remaining < o.Remaining:
			traded := best.Remaining
			e.emit(o, order.StatusPartialFill, traded, price, seq)
			e.emit(best, order.StatusFill, traded, price, seq)
			e.book.ReduceOrRemoveBest(opp, traded)
			o.Remaining -= traded

		default:
			traded := o.Remaining
			e.emit(o, order.StatusFill, traded, price, seq)
			e.emit(best, order.StatusFill, traded, price, seq)
			e.book.ReduceOrRemoveBest(opp, traded)
			o.Remaining = 0
		}
	}

	// Unmatched remainder rests without a standalone New event; its later
	// fills are sequenced in their takers' chains.
	if o.Remaining > 0 {
		e.book.Insert(o)
	}
}

// crosses reports whether incoming o can trade against resting best. The
// comparison always uses o's original limit price, not the last trade price.
func crosses(o, best *order.Order) bool {
	if o.Side == order.Buy {
		return best.Price <= o.Price
	}
	return best.Price >= o.Price
}

func (e *Engine) emit(o *order.Order, status order.Status, qty, price int64, seq *sequencer) {
	e.out.Submit(&order.Event{
		OrderID:    o.OrderID,
		Client:     o.Client,
		Instrument: o.Instrument,
		SideText:   o.SideText,
		Status:     status,
		Qty:        qty,
		Price:      price,
		Key:        seq.key(),
		Timestamp:  e.stamp.Stamp(),
	})
}
