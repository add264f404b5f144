// Package report serializes the drained event sequence to the execution
// report. Content and order are fixed upstream; this is formatting only.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/crocusx/crocus/pkg/core/order"
)

var header = []string{
	"Order ID", "Client Order ID", "Instrument", "Side",
	"Exec Status", "Quantity", "Price", "Transaction Time", "Reason",
}

type CSVWriter struct {
	w *csv.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Write(events []*order.Event) error {
	if err := c.w.Write(header); err != nil {
		return err
	}
	for _, ev := range events {
		if err := c.w.Write(row(ev)); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}

// row renders one event. Rejects echo the raw quantity/price text since a
// rejected row may carry fields that never parsed.
func row(ev *order.Event) []string {
	qty := strconv.FormatInt(ev.Qty, 10)
	price := order.FormatPrice(ev.Price)
	if ev.Status == order.StatusReject {
		qty = ev.QtyText
		price = ev.PriceText
	}
	return []string{
		ev.OrderID,
		ev.Client,
		ev.Instrument,
		ev.SideText,
		ev.Status.String(),
		qty,
		price,
		ev.Timestamp,
		ev.Reason.String(),
	}
}

// WriteFile writes the report to path, truncating any existing file.
func WriteFile(path string, events []*order.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	if err := NewCSVWriter(f).Write(events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
