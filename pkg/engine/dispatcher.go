// Package engine runs the batch: classify every instruction, scatter one
// matching goroutine per observed instrument plus one rejection pass, wait
// at the barrier, then gather the globally ordered event sequence.
package engine

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/crocusx/crocus/params"
	"github.com/crocusx/crocus/pkg/core/match"
	"github.com/crocusx/crocus/pkg/core/order"
	"github.com/crocusx/crocus/pkg/core/registry"
	"github.com/crocusx/crocus/pkg/core/validate"
	"github.com/crocusx/crocus/pkg/ingest"
)

type Dispatcher struct {
	cfg   params.Config
	stamp match.Stamper
	log   *zap.SugaredLogger
}

func New(cfg params.Config, stamp match.Stamper, log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{cfg: cfg, stamp: stamp, log: log}
}

// Run consumes the source to exhaustion, matches every instrument in
// parallel and returns the drained event sequence. The result depends only
// on the input rows, never on goroutine scheduling: events are ordered by
// sequence key, and the registry is drained only after the barrier.
func (d *Dispatcher) Run(src ingest.Source) ([]*order.Event, error) {
	classifier := validate.New(d.cfg.Validation)

	// Phase 1: classify. Pending lists stay in origin order because the
	// source yields rows in input order.
	pending := make(map[string][]*order.Order)
	var rejects []*validate.Rejection
	rows := 0
	for {
		in, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "ingest")
		}
		rows++
		if o, rej := classifier.Classify(in); o != nil {
			pending[o.Instrument] = append(pending[o.Instrument], o)
		} else {
			rejects = append(rejects, rej)
		}
	}

	// Phase 2: scatter. Worker count is data-driven; only the registry is
	// shared, by synchronized reference.
	reg := registry.New()
	var wg sync.WaitGroup
	for instrument, orders := range pending {
		wg.Add(1)
		go func(instrument string, orders []*order.Order) {
			defer wg.Done()
			match.New(instrument, reg, d.stamp, d.log).Run(orders)
		}(instrument, orders)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, rej := range rejects {
			reg.Submit(rej.Event(d.stamp.Stamp()))
		}
	}()
	wg.Wait()

	// Phase 3: gather, single-threaded past the barrier.
	events := reg.DrainAscending()
	d.log.Infow("batch_done",
		"rows", rows,
		"instruments", len(pending),
		"rejects", len(rejects),
		"events", len(events))
	return events, nil
}
