package validate

import (
	"testing"

	"github.com/crocusx/crocus/params"
	"github.com/crocusx/crocus/pkg/core/order"
)

func newTestClassifier() *Classifier {
	return New(params.Default().Validation)
}

func inst(client, instrument, side, qty, price string) order.Instruction {
	return order.Instruction{
		Origin:     1,
		Client:     client,
		Instrument: instrument,
		SideText:   side,
		QtyText:    qty,
		PriceText:  price,
	}
}

func TestClassifyRejects(t *testing.T) {
	tests := []struct {
		name string
		in   order.Instruction
		want order.Reason
	}{
		{"missing client", inst("", "Rose", "1", "100", "10.00"), order.ReasonMissingField},
		{"missing quantity", inst("aa1", "Rose", "1", "", "10.00"), order.ReasonMissingField},
		{"missing price", inst("aa1", "Rose", "1", "100", ""), order.ReasonMissingField},
		{"unknown instrument", inst("aa1", "Zinnia", "1", "100", "10.00"), order.ReasonInvalidInstrument},
		{"bad side code", inst("aa1", "Rose", "7", "100", "10.00"), order.ReasonInvalidSide},
		{"qty not lot multiple", inst("aa1", "Rose", "1", "23", "10.00"), order.ReasonInvalidQuantity},
		{"qty at ceiling", inst("aa1", "Rose", "1", "1000", "10.00"), order.ReasonInvalidQuantity},
		{"qty zero", inst("aa1", "Rose", "1", "0", "10.00"), order.ReasonInvalidQuantity},
		{"qty negative", inst("aa1", "Rose", "2", "-10", "10.00"), order.ReasonInvalidQuantity},
		{"qty not numeric", inst("aa1", "Rose", "1", "ten", "10.00"), order.ReasonInvalidQuantity},
		{"price zero", inst("aa1", "Rose", "1", "100", "0"), order.ReasonInvalidPrice},
		{"price negative", inst("aa1", "Rose", "1", "100", "-1.5"), order.ReasonInvalidPrice},
		{"price not numeric", inst("aa1", "Rose", "1", "100", "cheap"), order.ReasonInvalidPrice},
		// Presence is checked across all fields before any value check.
		{"missing price beats bad instrument", inst("aa1", "Zinnia", "1", "100", ""), order.ReasonMissingField},
		// Check order is instrument, side, quantity, price.
		{"bad instrument beats bad quantity", inst("aa1", "Zinnia", "1", "23", "10.00"), order.ReasonInvalidInstrument},
		{"bad side beats bad price", inst("aa1", "Rose", "9", "100", "0"), order.ReasonInvalidSide},
	}
	c := newTestClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, rej := c.Classify(tt.in)
			if o != nil {
				t.Fatalf("expected rejection, got live order %+v", o)
			}
			if rej.Reason != tt.want {
				t.Errorf("reason = %v, want %v", rej.Reason, tt.want)
			}
		})
	}
}

func TestClassifyAccept(t *testing.T) {
	c := newTestClassifier()
	o, rej := c.Classify(order.Instruction{
		Origin:     7,
		Client:     "aa1",
		Instrument: "Tulip",
		SideText:   "2",
		QtyText:    "250",
		PriceText:  "9.50",
	})
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej.Reason)
	}
	if o.OrderID != "ord7" {
		t.Errorf("order id = %q", o.OrderID)
	}
	if o.Side != order.Sell {
		t.Errorf("side = %v, want sell", o.Side)
	}
	if o.Qty != 250 || o.Remaining != 250 {
		t.Errorf("qty = %d remaining = %d", o.Qty, o.Remaining)
	}
	if o.Price != 95000 {
		t.Errorf("price = %d minor units, want 95000", o.Price)
	}
}

func TestRejectionEventEchoesRawFields(t *testing.T) {
	c := newTestClassifier()
	_, rej := c.Classify(inst("bb2", "Rose", "1", "lots", "10.00"))
	if rej == nil {
		t.Fatal("expected rejection")
	}
	ev := rej.Event("20240101-120000.000")
	if ev.Status != order.StatusReject {
		t.Errorf("status = %v", ev.Status)
	}
	if ev.Key != (order.Key{Origin: 1}) {
		t.Errorf("key = %v", ev.Key)
	}
	if ev.QtyText != "lots" || ev.PriceText != "10.00" {
		t.Errorf("raw echo = (%q, %q)", ev.QtyText, ev.PriceText)
	}
	if ev.Timestamp != "20240101-120000.000" {
		t.Errorf("timestamp = %q", ev.Timestamp)
	}
}
