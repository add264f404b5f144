package ingest

import (
	"io"
	"strings"
	"testing"
)

const sample = `Client Order ID,Instrument,Side,Quantity,Price
aa1,Rose,1,100,10.00
aa2,Rose
aa3,Tulip,2,50,9.50,ignored-extra
`

func TestCSVSource(t *testing.T) {
	src := NewCSVSource(strings.NewReader(sample))

	first, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Origin != 1 || first.Client != "aa1" || first.PriceText != "10.00" {
		t.Errorf("first row = %+v", first)
	}

	// Short rows come through with empty trailing fields; the validator
	// turns those into MissingField rejects.
	second, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Origin != 2 || second.SideText != "" || second.QtyText != "" {
		t.Errorf("second row = %+v", second)
	}

	third, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Origin != 3 || third.Instrument != "Tulip" || third.PriceText != "9.50" {
		t.Errorf("third row = %+v", third)
	}

	if _, err := src.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestHeaderOnlyInput(t *testing.T) {
	src := NewCSVSource(strings.NewReader("Client Order ID,Instrument,Side,Quantity,Price\n"))
	if _, err := src.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestOpenMissingFileIsFatal(t *testing.T) {
	if _, err := Open("testdata/does-not-exist.csv"); err == nil {
		t.Error("expected error opening missing input")
	}
}
