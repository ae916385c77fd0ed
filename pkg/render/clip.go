package render

// clipRect is an axis-aligned clip window, inclusive on all sides.
type clipRect struct {
	minX, minY, maxX, maxY float64
}

// clipPolygon clips a polygon against the window (Sutherland-Hodgman).
// The result may be empty. Input is treated as closed.
func (r clipRect) clipPolygon(in []ScreenPoint) []ScreenPoint {
	out := append([]ScreenPoint(nil), in...)
	edges := []struct {
		inside func(ScreenPoint) bool
		cross  func(a, b ScreenPoint) ScreenPoint
	}{
		{
			func(p ScreenPoint) bool { return p.X >= r.minX },
			func(a, b ScreenPoint) ScreenPoint { return atX(a, b, r.minX) },
		},
		{
			func(p ScreenPoint) bool { return p.X <= r.maxX },
			func(a, b ScreenPoint) ScreenPoint { return atX(a, b, r.maxX) },
		},
		{
			func(p ScreenPoint) bool { return p.Y >= r.minY },
			func(a, b ScreenPoint) ScreenPoint { return atY(a, b, r.minY) },
		},
		{
			func(p ScreenPoint) bool { return p.Y <= r.maxY },
			func(a, b ScreenPoint) ScreenPoint { return atY(a, b, r.maxY) },
		},
	}

	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		src := out
		out = make([]ScreenPoint, 0, len(src)+2)
		prev := src[len(src)-1]
		for _, cur := range src {
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn:
				out = append(out, e.cross(prev, cur), cur)
			case prevIn:
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

// atX returns the point on segment ab with the given x.
func atX(a, b ScreenPoint, x float64) ScreenPoint {
	t := (x - a.X) / (b.X - a.X)
	return ScreenPoint{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

// atY returns the point on segment ab with the given y.
func atY(a, b ScreenPoint, y float64) ScreenPoint {
	t := (y - a.Y) / (b.Y - a.Y)
	return ScreenPoint{X: a.X + t*(b.X-a.X), Y: y}
}

// clipSegment clips segment ab to the window (Liang-Barsky).
// ok is false when no part of the segment is inside.
func (r clipRect) clipSegment(a, b ScreenPoint) (ScreenPoint, ScreenPoint, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0

	for _, pq := range [4][2]float64{
		{-dx, a.X - r.minX},
		{dx, r.maxX - a.X},
		{-dy, a.Y - r.minY},
		{dy, r.maxY - a.Y},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}

	ca := ScreenPoint{a.X + t0*dx, a.Y + t0*dy}
	cb := ScreenPoint{a.X + t1*dx, a.Y + t1*dy}
	return ca, cb, true
}
