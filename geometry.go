// geometry.go re-exports geometry types from internal/geom.
// Any changes to internal/geom types must be mirrored here.
package visibility

import "github.com/grindlemire/go-visibility/internal/geom"

// Rect represents a rectangle with integer document coordinates.
type Rect = geom.Rect

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = geom.Edges

// Margin grows or shrinks the viewport before intersections are computed.
type Margin = geom.Margin

// Offset is one side of a Margin, fixed cells or a percentage.
type Offset = geom.Offset

// Unit specifies how an Offset is interpreted.
type Unit = geom.Unit

const (
	UnitFixed   = geom.UnitFixed
	UnitPercent = geom.UnitPercent
)

// ErrInvalidMargin is returned by ParseMargin for malformed margin strings.
var ErrInvalidMargin = geom.ErrInvalidMargin

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return geom.NewRect(x, y, width, height)
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return geom.EdgeAll(n)
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l int) Edges {
	return geom.EdgeTRBL(t, r, b, l)
}

// Fixed creates an Offset of n cells.
func Fixed(n int) Offset {
	return geom.Fixed(n)
}

// Percent creates an Offset that is a percentage of the viewport's extent
// along the offset's axis.
func Percent(p float64) Offset {
	return geom.Percent(p)
}

// MarginAll returns a Margin with the same offset on every side.
func MarginAll(o Offset) Margin {
	return geom.MarginAll(o)
}

// ParseMargin parses a CSS-style root margin such as "100px" or "0 10% 5px".
func ParseMargin(s string) (Margin, error) {
	return geom.ParseMargin(s)
}
