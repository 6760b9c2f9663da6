package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMargin is returned by ParseMargin for malformed margin strings.
var ErrInvalidMargin = errors.New("invalid root margin")

// Unit specifies how an Offset is interpreted.
type Unit uint8

const (
	UnitFixed   Unit = iota // Absolute cells
	UnitPercent             // Percentage of the root's width or height
)

// Offset is one side of a Margin.
type Offset struct {
	Amount float64
	Unit   Unit
}

// Fixed returns an Offset of n cells.
func Fixed(n int) Offset {
	return Offset{Amount: float64(n), Unit: UnitFixed}
}

// Percent returns an Offset on a 0-100 scale (50.0 = 50%).
func Percent(p float64) Offset {
	return Offset{Amount: p, Unit: UnitPercent}
}

// Resolve computes the integer offset given the length of the root along
// the offset's axis.
func (o Offset) Resolve(length int) int {
	if o.Unit == UnitPercent {
		return int(float64(length) * o.Amount / 100.0)
	}
	return int(o.Amount)
}

func (o Offset) String() string {
	if o.Unit == UnitPercent {
		return strconv.FormatFloat(o.Amount, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(o.Amount, 'f', -1, 64) + "px"
}

// Margin grows (positive) or shrinks (negative) a root rectangle before
// intersections are computed.
type Margin struct {
	Top, Right, Bottom, Left Offset
}

// MarginAll returns a Margin with the same offset on every side.
func MarginAll(o Offset) Margin {
	return Margin{Top: o, Right: o, Bottom: o, Left: o}
}

// IsZero reports whether every side resolves to zero regardless of root size.
func (m Margin) IsZero() bool {
	return m.Top.Amount == 0 && m.Right.Amount == 0 && m.Bottom.Amount == 0 && m.Left.Amount == 0
}

// Edges resolves the margin against root. Top and bottom percentages use
// the root height; left and right use the root width.
func (m Margin) Edges(root Rect) Edges {
	return Edges{
		Top:    m.Top.Resolve(root.Height),
		Right:  m.Right.Resolve(root.Width),
		Bottom: m.Bottom.Resolve(root.Height),
		Left:   m.Left.Resolve(root.Width),
	}
}

// Apply returns root expanded by the resolved margin.
func (m Margin) Apply(root Rect) Rect {
	if m.IsZero() {
		return root
	}
	return root.Outset(m.Edges(root))
}

func (m Margin) String() string {
	return strings.Join([]string{m.Top.String(), m.Right.String(), m.Bottom.String(), m.Left.String()}, " ")
}

// ParseMargin parses the CSS shorthand used for root margins: one to four
// whitespace-separated values in top/right/bottom/left order, each a number
// followed by "px", "%", or nothing (cells).
//
//	"100px"          all sides
//	"10px 20px"      vertical, horizontal
//	"0 10% 5px"      top, horizontal, bottom
//	"1 2 3 4"        top, right, bottom, left
//
// An empty string is a zero margin.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("%w: %q has %d values, want 1-4", ErrInvalidMargin, s, len(fields))
	}

	offsets := make([]Offset, len(fields))
	for i, f := range fields {
		o, err := parseOffset(f)
		if err != nil {
			return Margin{}, fmt.Errorf("%w: %q: %v", ErrInvalidMargin, s, err)
		}
		offsets[i] = o
	}

	switch len(offsets) {
	case 1:
		return MarginAll(offsets[0]), nil
	case 2:
		return Margin{Top: offsets[0], Right: offsets[1], Bottom: offsets[0], Left: offsets[1]}, nil
	case 3:
		return Margin{Top: offsets[0], Right: offsets[1], Bottom: offsets[2], Left: offsets[1]}, nil
	default:
		return Margin{Top: offsets[0], Right: offsets[1], Bottom: offsets[2], Left: offsets[3]}, nil
	}
}

func parseOffset(s string) (Offset, error) {
	unit := UnitFixed
	num := s
	switch {
	case strings.HasSuffix(s, "%"):
		unit = UnitPercent
		num = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Offset{}, fmt.Errorf("bad offset %q", s)
	}
	return Offset{Amount: v, Unit: unit}, nil
}
