package game

// Rect is an axis-aligned box in court coordinates. Y grows downward.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether two boxes overlap. Boxes that only share an
// edge count as overlapping.
func (r Rect) Intersects(o Rect) bool {
	if r.Right() < o.Left() || o.Right() < r.Left() {
		return false
	}
	if r.Bottom() < o.Top() || o.Bottom() < r.Top() {
		return false
	}
	return true
}

// clamp keeps v inside [lo, hi]. If the range is inverted lo wins.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
