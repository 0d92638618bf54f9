package geom

// IntersectBox clips g against an axis-aligned box using Sutherland-Hodgman
// polygon clipping. The clip window is convex so the algorithm is exact for
// the exterior ring of every part; each interior ring is clipped against
// the same window independently and kept as a hole of the result when
// non-empty. A hole cut by the window edge is therefore kept as a separate
// hole touching the clipped exterior rather than merged into it; the
// interior splitter uses IntersectBoxExact for that reason, and this clip
// serves the threshold splitter's grid cells.
//
// Returns false if nothing in g intersects the box.
func IntersectBox(g Geom, box Bounds) (MultiPolygon, bool) {
	var out []Polygon
	for _, p := range g.Parts() {
		if clipped, ok := intersectPolygonBox(p, box); ok {
			out = append(out, clipped)
		}
	}
	if len(out) == 0 {
		return MultiPolygon{}, false
	}
	return MultiPolygon{Polygons: out}, true
}

func intersectPolygonBox(p Polygon, box Bounds) (Polygon, bool) {
	ext := clipRingToBox(p.Exterior, box)
	if len(ext.Coords) < 3 {
		return Polygon{}, false
	}
	result := Polygon{Exterior: ext}
	for _, hole := range p.Interiors {
		clippedHole := clipRingToBox(hole, box)
		if len(clippedHole.Coords) >= 3 {
			result.Interiors = append(result.Interiors, clippedHole)
		}
	}
	return result, true
}

// clipRingToBox runs Sutherland-Hodgman clipping of r against box, one edge
// of the box at a time (left, right, bottom, top).
func clipRingToBox(r Ring, box Bounds) Ring {
	pts := r.Coords
	pts = clipAgainstEdge(pts, func(p Point) bool { return p.X >= box.MinX },
		func(a, b Point) Point { return lerpX(a, b, box.MinX) })
	pts = clipAgainstEdge(pts, func(p Point) bool { return p.X <= box.MaxX },
		func(a, b Point) Point { return lerpX(a, b, box.MaxX) })
	pts = clipAgainstEdge(pts, func(p Point) bool { return p.Y >= box.MinY },
		func(a, b Point) Point { return lerpY(a, b, box.MinY) })
	pts = clipAgainstEdge(pts, func(p Point) bool { return p.Y <= box.MaxY },
		func(a, b Point) Point { return lerpY(a, b, box.MaxY) })
	return Ring{Coords: pts}
}

func clipAgainstEdge(pts []Point, inside func(Point) bool, intersect func(a, b Point) Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	var out []Point
	prev := pts[len(pts)-1]
	prevIn := inside(prev)
	for _, cur := range pts {
		curIn := inside(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, intersect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

func lerpX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func lerpY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}
