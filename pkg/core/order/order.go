package order

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PriceDecimals is the fixed-point scale for prices: all internal price
// arithmetic runs on int64 minor units (1 = 0.0001). Text conversion happens
// only at the ingest/report boundary.
const PriceDecimals = 4

type Side int8

const (
	SideUnknown Side = iota
	Buy
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// Opposite returns the side a crossing order trades against.
func (s Side) Opposite() Side {
	switch s {
	case Buy:
		return Sell
	case Sell:
		return Buy
	default:
		return SideUnknown
	}
}

// Status is an execution event status. String values are the wire text
// written to the execution report.
type Status int8

const (
	StatusNew Status = iota
	StatusPartialFill
	StatusFill
	StatusReject
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusPartialFill:
		return "PFill"
	case StatusFill:
		return "Fill"
	case StatusReject:
		return "Reject"
	default:
		return "unknown"
	}
}

// Reason classifies why the validator rejected an instruction.
type Reason int8

const (
	ReasonNone Reason = iota
	ReasonMissingField
	ReasonInvalidInstrument
	ReasonInvalidSide
	ReasonInvalidQuantity
	ReasonInvalidPrice
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingField:
		return "Missing field"
	case ReasonInvalidInstrument:
		return "Invalid instrument"
	case ReasonInvalidSide:
		return "Invalid side"
	case ReasonInvalidQuantity:
		return "Invalid quantity"
	case ReasonInvalidPrice:
		return "Invalid price"
	default:
		return ""
	}
}

// Key is the global ordering key for execution events. Origin is the 1-based
// position of the instruction in the input stream; Ordinal counts the events
// emitted while that instruction was the active taker. Every key of origin N
// compares below every key of origin N+1, so per-instrument event streams
// merge back into input arrival order.
type Key struct {
	Origin  uint64
	Ordinal uint32
}

// Less reports whether k orders strictly before other.
func (k Key) Less(other Key) bool {
	if k.Origin != other.Origin {
		return k.Origin < other.Origin
	}
	return k.Ordinal < other.Ordinal
}

// Instruction is one raw input row: the origin index plus the field text as
// ingested. Side, quantity and price stay text here because a rejected row
// may carry values that never parse; the validator derives the typed fields.
type Instruction struct {
	Origin     uint64
	Client     string
	Instrument string
	SideText   string
	QtyText    string
	PriceText  string
}

// ID derives the order identifier from the origin index.
func (in Instruction) ID() string {
	return "ord" + strconv.FormatUint(in.Origin, 10)
}

// Order is a validated instruction under matching. Owned exclusively by the
// matching engine of its instrument; never shared across goroutines.
type Order struct {
	Instruction

	OrderID   string
	Side      Side
	Qty       int64 // original quantity, units
	Price     int64 // limit price, minor units
	Remaining int64
}

// Event is one execution report line. Immutable once created.
type Event struct {
	OrderID    string
	Client     string
	Instrument string
	SideText   string
	Status     Status
	Qty        int64
	Price      int64 // minor units
	Key        Key
	Timestamp  string
	Reason     Reason

	// Raw field text, echoed by the report writer for rejects whose numeric
	// fields may be unparseable.
	QtyText   string
	PriceText string
}

// ParsePrice converts price field text to minor units. Values with more than
// PriceDecimals decimal places are rounded half-up. Non-numeric or
// non-positive input returns ok=false.
func ParsePrice(s string) (int64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return 0, false
	}
	m := d.Shift(PriceDecimals).Round(0).IntPart()
	if m <= 0 {
		return 0, false
	}
	return m, true
}

// FormatPrice renders minor units back to decimal text, trailing zeros
// trimmed ("95000" -> "9.5").
func FormatPrice(p int64) string {
	return decimal.New(p, -PriceDecimals).String()
}

// ParseQty converts quantity field text to units. The field must be a clean
// base-10 integer; range and lot checks belong to the validator.
func ParseQty(s string) (int64, bool) {
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return q, true
}
