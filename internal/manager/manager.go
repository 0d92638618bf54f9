// Package manager implements the geometry manager: a lazy pull-stream
// cursor over an external geometry source that applies the multipart
// policy, optional interior/threshold splitting, and optional
// reprojection to each record as it is pulled, never materializing more
// than one record at a time.
package manager

import (
	"fmt"

	"github.com/nhd-mesh/catchmesh/internal/catchmesherr"
	"github.com/nhd-mesh/catchmesh/internal/geom"
	"github.com/nhd-mesh/catchmesh/internal/split"
)

// Record pairs a geometry with the single integer/string UID the pipeline
// carries through to the mesh's UID variable.
type Record struct {
	UID  interface{}
	Geom geom.Geom
}

// Source is the narrow, externally-supplied collaborator this package
// consumes for raw geometry access — the vector file reader (shapefile,
// file geodatabase, or any in-memory set of records) is never imported
// directly here.
type Source interface {
	// Len returns the total number of records available.
	Len() int
	// At returns the record at index i, 0 <= i < Len().
	At(i int) (Record, error)
}

// Reprojector is the narrow, externally-supplied CRS transform
// collaborator.
type Reprojector interface {
	Transform(g geom.Geom, srcCRS, destCRS string) (geom.Geom, error)
}

// Section is a half-open [Start, Stop) index range into a Source.
type Section struct {
	Start, Stop int
}

// Config controls how the manager processes each record it pulls.
type Config struct {
	// AllowMultipart controls whether MultiPolygon records are accepted.
	// When false, a MultiPolygon record produces a MultipartNotAllowed
	// error when pulled.
	AllowMultipart bool
	// SplitInteriors runs the hole splitter on every record.
	SplitInteriors bool
	// NodeThreshold runs the node-count threshold splitter when > 0.
	NodeThreshold int
	// SrcCRS and DestCRS are passed to Reprojector.Transform when both are
	// non-empty and Reprojector is set.
	SrcCRS, DestCRS string
	Reprojector     Reprojector
}

// DefaultConfig returns the Config the reference pipeline uses when a
// caller doesn't need multipart flattening, splitting, or reprojection.
func DefaultConfig() Config {
	return Config{AllowMultipart: true}
}

// Manager is a pull-stream cursor over a Source.
type Manager struct {
	source  Source
	cfg     Config
	section Section
}

// New wraps source with cfg, iterating the full [0, source.Len()) range.
func New(source Source, cfg Config) *Manager {
	return &Manager{source: source, cfg: cfg, section: Section{Start: 0, Stop: source.Len()}}
}

// Len returns the number of records in the manager's current section.
func (m *Manager) Len() int {
	return m.section.Stop - m.section.Start
}

// Slc returns a new Manager restricted to the half-open [start, stop)
// index range of the underlying source, leaving the receiver untouched.
func (m *Manager) Slc(start, stop int) *Manager {
	return &Manager{source: m.source, cfg: m.cfg, section: Section{Start: start, Stop: stop}}
}

// IterRecords pulls each record in the manager's section in order, applying
// the multipart policy, optional splitting, and optional reprojection, and
// invokes fn once per resulting record. It stops and returns fn's error
// immediately if fn returns a non-nil error.
func (m *Manager) IterRecords(fn func(Record) error) error {
	for i := m.section.Start; i < m.section.Stop; i++ {
		rec, err := m.source.At(i)
		if err != nil {
			return fmt.Errorf("read record %d: %w", i, err)
		}
		processed, err := m.process(rec)
		if err != nil {
			return err
		}
		for _, r := range processed {
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// SelectUID scans the manager's section for the first record whose UID
// equals uid (after processing), returning ok=false if none matches.
func (m *Manager) SelectUID(uid interface{}) (Record, bool, error) {
	var found Record
	ok := false
	err := m.IterRecords(func(r Record) error {
		if !ok && r.UID == uid {
			found, ok = r, true
		}
		return nil
	})
	if err != nil {
		return Record{}, false, err
	}
	return found, ok, nil
}

// process applies the multipart policy, splitting, and reprojection to a
// single raw record, returning exactly one output record with the input's
// UID (splitting turns its geometry into a MultiPolygon of the pieces).
func (m *Manager) process(rec Record) ([]Record, error) {
	if rec.Geom.IsMulti() && !m.cfg.AllowMultipart {
		return nil, &catchmesherr.MultipartNotAllowed{UID: rec.UID}
	}

	g := rec.Geom
	if m.cfg.SplitInteriors && g.NumInteriors() > 0 {
		mp, err := split.Interiors(g)
		if err != nil {
			return nil, fmt.Errorf("record %v: split interiors: %w", rec.UID, err)
		}
		g = geom.FromMultiPolygon(mp)
	}

	if m.cfg.NodeThreshold > 0 {
		mp, _, err := split.Threshold(g, m.cfg.NodeThreshold)
		if err != nil {
			return nil, fmt.Errorf("record %v: split threshold: %w", rec.UID, err)
		}
		g = geom.FromMultiPolygon(mp)
	}

	if m.cfg.Reprojector != nil && m.cfg.SrcCRS != "" && m.cfg.DestCRS != "" {
		transformed, err := m.cfg.Reprojector.Transform(g, m.cfg.SrcCRS, m.cfg.DestCRS)
		if err != nil {
			return nil, fmt.Errorf("record %v: reproject: %w", rec.UID, err)
		}
		g = transformed
	}

	repaired, ok := geom.RepairGeom(g)
	if !ok {
		return nil, &catchmesherr.GeometryInvalid{UID: rec.UID, Reason: "geometry collapsed during repair"}
	}

	return []Record{{UID: rec.UID, Geom: repaired}}, nil
}
