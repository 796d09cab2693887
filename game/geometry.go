package game

import "math/rand"

// Size is a width/height pair in pixels.
type Size struct {
	W, H int
}

// Point is a top-left offset in pixels.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned box. Right and Bottom are edges, not last pixels.
type Rect struct {
	Left, Top, Right, Bottom int
}

func rectAt(p Point, s Size) Rect {
	return Rect{Left: p.X, Top: p.Y, Right: p.X + s.W, Bottom: p.Y + s.H}
}

// Overlaps treats touching edges as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right < o.Left ||
		r.Left > o.Right ||
		r.Bottom < o.Top ||
		r.Top > o.Bottom)
}

// Geometry answers the layout questions the board would answer in a browser.
type Geometry interface {
	Board() Size
	Player() Size
	Target() Size
}

// FixedGeometry is a Geometry with constant sizes.
type FixedGeometry struct {
	BoardSize  Size
	PlayerSize Size
	TargetSize Size
}

func (g FixedGeometry) Board() Size  { return g.BoardSize }
func (g FixedGeometry) Player() Size { return g.PlayerSize }
func (g FixedGeometry) Target() Size { return g.TargetSize }

// Sampler returns an integer in [0, n). It must return 0 when n <= 0.
type Sampler func(n int) int

// RandomSampler samples uniformly from r.
func RandomSampler(r *rand.Rand) Sampler {
	return func(n int) int {
		if n <= 0 {
			return 0
		}
		return int(r.Float64() * float64(n))
	}
}
