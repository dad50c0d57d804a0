package measurement

import (
	"fmt"
	"strings"
)

// Quantity is one labelled number of a result.
type Quantity struct {
	Label     string
	Value     float64
	Precision int
	Suffix    string
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s: %.*f%s", q.Label, q.Precision, q.Value, q.Suffix)
}

// Result is the outcome of a calculation.
type Result struct {
	Mode       Mode
	Quantities []Quantity
}

func (r Result) String() string {
	lines := make([]string, len(r.Quantities))
	for i, q := range r.Quantities {
		lines[i] = q.String()
	}
	return strings.Join(lines, "\n")
}

// Get returns the value of the quantity with the given label.
func (r Result) Get(label string) (float64, bool) {
	for _, q := range r.Quantities {
		if q.Label == label {
			return q.Value, true
		}
	}
	return 0, false
}

func distance(v float64) Quantity  { return Quantity{Label: "Distance", Value: v, Precision: 3} }
func angle(deg float64) Quantity   { return Quantity{Label: "Angle", Value: deg, Precision: 2, Suffix: "°"} }
func perimeter(v float64) Quantity { return Quantity{Label: "Perimeter", Value: v, Precision: 3} }
func area(v float64) Quantity      { return Quantity{Label: "Area", Value: v, Precision: 3} }
func volume(v float64) Quantity    { return Quantity{Label: "Volume", Value: v, Precision: 3} }
