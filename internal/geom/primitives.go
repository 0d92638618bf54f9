package geom

import "math"

// SignedRingArea returns the signed shoelace area of r: positive for a
// counter-clockwise ring, negative for clockwise.
func SignedRingArea(r Ring) float64 {
	n := len(r.Coords)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r.Coords[i].X*r.Coords[j].Y - r.Coords[j].X*r.Coords[i].Y
	}
	return sum / 2
}

// IsCCW reports whether r is wound counter-clockwise. A degenerate ring
// (area exactly zero) is treated as CCW.
func IsCCW(r Ring) bool {
	return SignedRingArea(r) >= 0
}

func reverseRing(r Ring) Ring {
	out := make([]Point, len(r.Coords))
	n := len(r.Coords)
	for i, pt := range r.Coords {
		out[n-1-i] = pt
	}
	return Ring{Coords: out}
}

// OrientCCW returns p with its exterior ring wound counter-clockwise and
// every interior ring wound clockwise, the standard OGC polygon winding.
func OrientCCW(p Polygon) Polygon {
	out := Polygon{Exterior: p.Exterior}
	if !IsCCW(out.Exterior) {
		out.Exterior = reverseRing(out.Exterior)
	}
	out.Interiors = make([]Ring, len(p.Interiors))
	for i, hole := range p.Interiors {
		if IsCCW(hole) {
			out.Interiors[i] = reverseRing(hole)
		} else {
			out.Interiors[i] = hole
		}
	}
	return out
}

// OrientGeomCCW applies OrientCCW to every part of g.
func OrientGeomCCW(g Geom) Geom {
	if g.IsMulti() {
		mp := g.AsMultiPolygon()
		out := MultiPolygon{Polygons: make([]Polygon, len(mp.Polygons))}
		for i, p := range mp.Polygons {
			out.Polygons[i] = OrientCCW(p)
		}
		return FromMultiPolygon(out)
	}
	return FromPolygon(OrientCCW(g.AsPolygon()))
}

// PolygonArea returns the polygon's area: exterior ring area minus the sum
// of interior ring areas.
func PolygonArea(p Polygon) float64 {
	area := math.Abs(SignedRingArea(p.Exterior))
	for _, hole := range p.Interiors {
		area -= math.Abs(SignedRingArea(hole))
	}
	return area
}

// GeomArea sums PolygonArea across all parts of g.
func GeomArea(g Geom) float64 {
	total := 0.0
	for _, p := range g.Parts() {
		total += PolygonArea(p)
	}
	return total
}

// ringCentroidMoment returns the area-weighted centroid contribution of a ring:
// the (cx, cy, signedArea) triple used by the standard polygon centroid
// formula, so exterior and interior contributions can be combined before
// dividing by total area.
func ringCentroidMoment(r Ring) (cx, cy, a float64) {
	n := len(r.Coords)
	if n < 3 {
		if n > 0 {
			return r.Coords[0].X, r.Coords[0].Y, 0
		}
		return 0, 0, 0
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r.Coords[i].X*r.Coords[j].Y - r.Coords[j].X*r.Coords[i].Y
		a += cross
		cx += (r.Coords[i].X + r.Coords[j].X) * cross
		cy += (r.Coords[i].Y + r.Coords[j].Y) * cross
	}
	a /= 2
	if a == 0 {
		return r.Coords[0].X, r.Coords[0].Y, 0
	}
	cx /= 6 * a
	cy /= 6 * a
	return cx, cy, a
}

// PolygonCentroid returns the area-weighted centroid of p, holes included.
func PolygonCentroid(p Polygon) Point {
	cx, cy, a := ringCentroidMoment(p.Exterior)
	momentX, momentY, totalArea := cx*a, cy*a, a
	for _, hole := range p.Interiors {
		hx, hy, ha := ringCentroidMoment(hole)
		momentX -= hx * ha
		momentY -= hy * ha
		totalArea -= ha
	}
	if totalArea == 0 {
		return Point{cx, cy}
	}
	return Point{momentX / totalArea, momentY / totalArea}
}

// GeomCentroid returns the area-weighted centroid across all parts of g.
func GeomCentroid(g Geom) Point {
	parts := g.Parts()
	var momentX, momentY, totalArea float64
	for _, p := range parts {
		c := PolygonCentroid(p)
		a := PolygonArea(p)
		momentX += c.X * a
		momentY += c.Y * a
		totalArea += a
	}
	if totalArea == 0 && len(parts) > 0 {
		return PolygonCentroid(parts[0])
	}
	return Point{momentX / totalArea, momentY / totalArea}
}

// RingContains reports whether (x,y) is inside ring r using the standard
// ray-casting test. Points exactly on the boundary may go either way.
func RingContains(r Ring, x, y float64) bool {
	n := len(r.Coords)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := r.Coords[i], r.Coords[j]
		if (pi.Y > y) != (pj.Y > y) {
			xInt := (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if x < xInt {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonContains reports whether (x,y) lies in p's exterior and outside
// every interior ring.
func PolygonContains(p Polygon, x, y float64) bool {
	if !RingContains(p.Exterior, x, y) {
		return false
	}
	for _, hole := range p.Interiors {
		if RingContains(hole, x, y) {
			return false
		}
	}
	return true
}

// GeomContains reports whether (x,y) lies in any part of g.
func GeomContains(g Geom, x, y float64) bool {
	for _, p := range g.Parts() {
		if PolygonContains(p, x, y) {
			return true
		}
	}
	return false
}

// RepresentativePoint returns a point guaranteed to lie inside p (inside the
// exterior ring and outside every hole). The polygon centroid is tried
// first since it is cheap and correct for the common convex, hole-free
// case; when it falls outside p (concave exterior) or inside a hole, a
// handful of horizontal scanlines across the bounding box are probed and
// the midpoint of the widest resulting chord is returned, mirroring the
// point-on-surface technique used by mainstream geometry engines.
func RepresentativePoint(p Polygon) Point {
	c := PolygonCentroid(p)
	if PolygonContains(p, c.X, c.Y) {
		return c
	}

	bounds := PolygonBounds(p)
	const scanlines = 33
	var bestMid Point
	bestWidth := -1.0
	for i := 1; i < scanlines; i++ {
		t := float64(i) / float64(scanlines)
		y := bounds.MinY + t*(bounds.MaxY-bounds.MinY)
		spans := ringCrossings(p.Exterior, y)
		for _, hole := range p.Interiors {
			spans = subtractCrossings(spans, ringCrossings(hole, y))
		}
		for _, sp := range spans {
			width := sp[1] - sp[0]
			if width > bestWidth {
				bestWidth = width
				bestMid = Point{(sp[0] + sp[1]) / 2, y}
			}
		}
	}
	if bestWidth >= 0 {
		return bestMid
	}
	return c
}

// GeomRepresentativePoint returns RepresentativePoint for the largest-area
// part of g, matching the convention that a MultiPolygon's representative
// point should land in its dominant piece.
func GeomRepresentativePoint(g Geom) Point {
	parts := g.Parts()
	best := parts[0]
	bestArea := PolygonArea(best)
	for _, p := range parts[1:] {
		if a := PolygonArea(p); a > bestArea {
			best, bestArea = p, a
		}
	}
	return RepresentativePoint(best)
}

// ringCrossings returns the sorted x-intervals where the horizontal line
// y=yLine crosses into ring r, paired up as [enter, exit] spans.
func ringCrossings(r Ring, yLine float64) [][2]float64 {
	n := len(r.Coords)
	var xs []float64
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := r.Coords[i], r.Coords[j]
		if (pi.Y > yLine) != (pj.Y > yLine) {
			x := (pj.X-pi.X)*(yLine-pi.Y)/(pj.Y-pi.Y) + pi.X
			xs = append(xs, x)
		}
		j = i
	}
	sortFloats(xs)
	var spans [][2]float64
	for i := 0; i+1 < len(xs); i += 2 {
		spans = append(spans, [2]float64{xs[i], xs[i+1]})
	}
	return spans
}

// subtractCrossings removes hole spans from exterior spans, keeping only
// the portions of each exterior span not covered by a hole span. Adjacent
// scanline probing only needs an approximate result, so overlapping holes
// simply shrink the widest remaining piece rather than producing an exact
// multi-interval difference.
func subtractCrossings(exterior, holes [][2]float64) [][2]float64 {
	if len(holes) == 0 {
		return exterior
	}
	out := make([][2]float64, 0, len(exterior))
	for _, span := range exterior {
		lo, hi := span[0], span[1]
		for _, h := range holes {
			if h[0] <= lo && h[1] >= hi {
				lo, hi = 0, 0
				break
			}
			if h[0] > lo && h[0] < hi {
				hi = h[0]
			}
			if h[1] > lo && h[1] < hi {
				lo = h[1]
			}
		}
		if hi > lo {
			out = append(out, [2]float64{lo, hi})
		}
	}
	return out
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// VertexCount returns the total number of distinct vertices across the
// exterior and all interior rings of p.
func VertexCount(p Polygon) int {
	n := len(p.Exterior.Coords)
	for _, hole := range p.Interiors {
		n += len(hole.Coords)
	}
	return n
}

// GeomVertexCount sums VertexCount across all parts of g.
func GeomVertexCount(g Geom) int {
	n := 0
	for _, p := range g.Parts() {
		n += VertexCount(p)
	}
	return n
}
