// Package geom implements the planar polygon primitives the mesh pipeline
// is built on: orientation, validity repair, bounds, area, centroid,
// representative point, and box intersection. General polygon boolean
// operations are delegated to an external geometry library: the touches
// predicate and validity check (touch.go), the exact box intersection
// (exact.go), and the self-union repair (valid.go).
package geom

import "math"

// Point is a plane coordinate.
type Point struct {
	X, Y float64
}

// Ring is a closed linear ring stored without a duplicated closing vertex:
// Coords[0] and Coords[len-1] are distinct, and the ring is implicitly
// closed from the last point back to the first.
type Ring struct {
	Coords []Point
}

// Polygon is a single exterior ring plus zero or more interior rings (holes).
type Polygon struct {
	Exterior  Ring
	Interiors []Ring
}

// MultiPolygon is an ordered collection of polygons.
type MultiPolygon struct {
	Polygons []Polygon
}

// Geom is the tagged sum of the two geometry kinds the pipeline works with.
// A zero-value Geom is never used; construct with FromPolygon or
// FromMultiPolygon.
type Geom struct {
	polygon      Polygon
	multiPolygon MultiPolygon
	isMulti      bool
}

// FromPolygon wraps a single polygon as a Geom.
func FromPolygon(p Polygon) Geom { return Geom{polygon: p} }

// FromMultiPolygon wraps a MultiPolygon as a Geom.
func FromMultiPolygon(mp MultiPolygon) Geom { return Geom{multiPolygon: mp, isMulti: true} }

// IsMulti reports whether g holds a MultiPolygon.
func (g Geom) IsMulti() bool { return g.isMulti }

// AsPolygon returns the wrapped Polygon. Only valid when !IsMulti().
func (g Geom) AsPolygon() Polygon { return g.polygon }

// AsMultiPolygon returns the wrapped MultiPolygon. Only valid when IsMulti().
func (g Geom) AsMultiPolygon() MultiPolygon { return g.multiPolygon }

// Parts returns the geometry as a flat slice of polygons, regardless of
// whether it was constructed as a single Polygon or a MultiPolygon.
func (g Geom) Parts() []Polygon {
	if g.isMulti {
		return g.multiPolygon.Polygons
	}
	return []Polygon{g.polygon}
}

// NumInteriors returns the total hole count across all parts of g.
func (g Geom) NumInteriors() int {
	n := 0
	for _, p := range g.Parts() {
		n += len(p.Interiors)
	}
	return n
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether b has not been extended with any point.
func (b Bounds) Empty() bool {
	return math.IsInf(b.MinX, 1) || b.MinX > b.MaxX
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	if b.Empty() {
		return other
	}
	if other.Empty() {
		return b
	}
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Contains reports whether the point (x,y) lies within b, inclusive of edges.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func emptyBounds() Bounds {
	return Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// RingBounds returns the bounding box of a single ring.
func RingBounds(r Ring) Bounds {
	b := emptyBounds()
	for _, pt := range r.Coords {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
	}
	return b
}

// PolygonBounds returns the bounding box of a polygon's exterior ring.
// Interior rings never extend the exterior's bounds and are ignored.
func PolygonBounds(p Polygon) Bounds {
	return RingBounds(p.Exterior)
}

// GeomBounds returns the union of bounds across all parts of g.
func GeomBounds(g Geom) Bounds {
	b := emptyBounds()
	for _, p := range g.Parts() {
		b = b.Union(PolygonBounds(p))
	}
	return b
}
