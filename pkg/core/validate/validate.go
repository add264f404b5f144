// Package validate classifies raw order instructions: well-formed rows become
// live orders routed to their instrument's pending list, everything else
// becomes a rejection with a single reason. One bad row never aborts the run.
package validate

import (
	"github.com/crocusx/crocus/params"
	"github.com/crocusx/crocus/pkg/core/order"
)

// Rejection is a failed instruction awaiting conversion into a Reject event
// by the rejection worker, which stamps the timestamp at emission time.
type Rejection struct {
	order.Instruction
	Reason order.Reason
}

// Event materializes the rejection into a report event. Quantity and price
// parse best-effort; the raw text rides along so the report can echo fields
// that never parsed.
func (r *Rejection) Event(timestamp string) *order.Event {
	qty, _ := order.ParseQty(r.QtyText)
	price, _ := order.ParsePrice(r.PriceText)
	return &order.Event{
		OrderID:    r.ID(),
		Client:     r.Client,
		Instrument: r.Instrument,
		SideText:   r.SideText,
		Status:     order.StatusReject,
		Qty:        qty,
		Price:      price,
		Key:        order.Key{Origin: r.Origin},
		Timestamp:  timestamp,
		Reason:     r.Reason,
		QtyText:    r.QtyText,
		PriceText:  r.PriceText,
	}
}

type Classifier struct {
	instruments map[string]struct{}
	sides       map[string]order.Side
	lotSize     int64
	qtyCeiling  int64
}

func New(cfg params.Validation) *Classifier {
	c := &Classifier{
		instruments: make(map[string]struct{}, len(cfg.Instruments)),
		sides:       make(map[string]order.Side, len(cfg.BuyCodes)+len(cfg.SellCodes)),
		lotSize:     cfg.LotSize,
		qtyCeiling:  cfg.QtyCeiling,
	}
	for _, ins := range cfg.Instruments {
		c.instruments[ins] = struct{}{}
	}
	for _, code := range cfg.BuyCodes {
		c.sides[code] = order.Buy
	}
	for _, code := range cfg.SellCodes {
		c.sides[code] = order.Sell
	}
	return c
}

// Classify runs the field checks in fixed order; the first failure wins.
// Exactly one of the two returns is non-nil.
func (c *Classifier) Classify(in order.Instruction) (*order.Order, *Rejection) {
	if reason := c.check(in); reason != order.ReasonNone {
		return nil, &Rejection{Instruction: in, Reason: reason}
	}

	qty, _ := order.ParseQty(in.QtyText)
	price, _ := order.ParsePrice(in.PriceText)
	return &order.Order{
		Instruction: in,
		OrderID:     in.ID(),
		Side:        c.sides[in.SideText],
		Qty:         qty,
		Price:       price,
		Remaining:   qty,
	}, nil
}

func (c *Classifier) check(in order.Instruction) order.Reason {
	for _, f := range []string{in.Client, in.Instrument, in.SideText, in.QtyText, in.PriceText} {
		if f == "" {
			return order.ReasonMissingField
		}
	}
	if _, ok := c.instruments[in.Instrument]; !ok {
		return order.ReasonInvalidInstrument
	}
	if _, ok := c.sides[in.SideText]; !ok {
		return order.ReasonInvalidSide
	}
	// A non-numeric quantity or price is a value failure, not a parse error.
	qty, ok := order.ParseQty(in.QtyText)
	if !ok || qty <= 0 || qty%c.lotSize != 0 || qty >= c.qtyCeiling {
		return order.ReasonInvalidQuantity
	}
	if _, ok := order.ParsePrice(in.PriceText); !ok {
		return order.ReasonInvalidPrice
	}
	return order.ReasonNone
}
