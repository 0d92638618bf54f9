package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT parses a WKT POLYGON or MULTIPOLYGON literal into a Geom. It is
// the exported entry point for callers (the CLI's input reader) that need
// to build records from a plain-text geometry format without depending on
// simplefeatures directly.
func ParseWKT(wkt string) (Geom, error) {
	g, ok, err := parseWKTPolygonal(wkt)
	if err != nil {
		return Geom{}, err
	}
	if !ok {
		return Geom{}, fmt.Errorf("wkt %q did not parse to a polygon or multipolygon", wkt)
	}
	return g, nil
}

// parseWKTPolygonal parses the WKT produced by simplefeatures for a
// POLYGON, MULTIPOLYGON, or GEOMETRYCOLLECTION EMPTY result into our Geom
// representation. Other geometry types (slivers collapsed to a point or
// line by a boolean operation) are reported as ok=false rather than
// parsed, since the splitters this feeds only ever want polygonal output.
func parseWKTPolygonal(wkt string) (Geom, bool, error) {
	wkt = strings.TrimSpace(wkt)
	upper := strings.ToUpper(wkt)
	switch {
	case strings.HasSuffix(upper, "EMPTY"):
		return Geom{}, false, nil
	case strings.HasPrefix(upper, "MULTIPOLYGON"):
		body := between(wkt, len("MULTIPOLYGON"))
		polys, err := parsePolygonList(body)
		if err != nil {
			return Geom{}, false, err
		}
		if len(polys) == 0 {
			return Geom{}, false, nil
		}
		if len(polys) == 1 {
			return FromPolygon(polys[0]), true, nil
		}
		return FromMultiPolygon(MultiPolygon{Polygons: polys}), true, nil
	case strings.HasPrefix(upper, "POLYGON"):
		body := between(wkt, len("POLYGON"))
		p, err := parseSinglePolygon(body)
		if err != nil {
			return Geom{}, false, err
		}
		return FromPolygon(p), true, nil
	case strings.HasPrefix(upper, "GEOMETRYCOLLECTION"):
		return Geom{}, false, nil
	case strings.HasPrefix(upper, "POINT"), strings.HasPrefix(upper, "MULTIPOINT"),
		strings.HasPrefix(upper, "LINESTRING"), strings.HasPrefix(upper, "MULTILINESTRING"):
		return Geom{}, false, nil
	default:
		return Geom{}, false, fmt.Errorf("unsupported wkt result type in %q", wkt)
	}
}

// between strips the leading tag and surrounding whitespace, keeping the
// parenthesized body, e.g. "POLYGON((0 0,...))" -> "((0 0,...))".
func between(wkt string, tagLen int) string {
	return strings.TrimSpace(wkt[tagLen:])
}

// parsePolygonList splits a MULTIPOLYGON body "(((...)),((...)))" into its
// individual polygon bodies and parses each.
func parsePolygonList(body string) ([]Polygon, error) {
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "(")
	body = strings.TrimSuffix(body, ")")
	parts := splitTopLevel(body)
	polys := make([]Polygon, 0, len(parts))
	for _, part := range parts {
		p, err := parseSinglePolygon(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		polys = append(polys, p)
	}
	return polys, nil
}

// parseSinglePolygon parses a polygon body "(ring[,ring...])" into a Polygon.
func parseSinglePolygon(body string) (Polygon, error) {
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "(")
	body = strings.TrimSuffix(body, ")")
	rings := splitTopLevel(body)
	if len(rings) == 0 {
		return Polygon{}, fmt.Errorf("polygon has no rings")
	}
	ext, err := parseRing(rings[0])
	if err != nil {
		return Polygon{}, err
	}
	p := Polygon{Exterior: ext}
	for _, r := range rings[1:] {
		hole, err := parseRing(r)
		if err != nil {
			return Polygon{}, err
		}
		p.Interiors = append(p.Interiors, hole)
	}
	return p, nil
}

// parseRing parses a single ring "(x y,x y,...)", dropping the duplicated
// closing vertex.
func parseRing(s string) (Ring, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	coordStrs := strings.Split(s, ",")
	pts := make([]Point, 0, len(coordStrs))
	for _, cs := range coordStrs {
		fields := strings.Fields(strings.TrimSpace(cs))
		if len(fields) < 2 {
			continue
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Ring{}, fmt.Errorf("parse x coordinate %q: %w", fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Ring{}, fmt.Errorf("parse y coordinate %q: %w", fields[1], err)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return Ring{Coords: pts}, nil
}

// splitTopLevel splits s on commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
