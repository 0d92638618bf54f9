// Package catchmesherr defines the typed error kinds produced while turning
// catchment polygons into an ESMF mesh. Each kind is its own struct rather
// than a sentinel so callers can pull the offending UID or geometry out of
// the error with errors.As.
package catchmesherr

import "fmt"

// InputError wraps a failure reading or validating a source record.
type InputError struct {
	UID interface{}
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input record %v: %v", e.UID, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// GeometryInvalid reports a geometry that failed repair.
type GeometryInvalid struct {
	UID    interface{}
	Reason string
}

func (e *GeometryInvalid) Error() string {
	return fmt.Sprintf("geometry invalid for uid %v: %s", e.UID, e.Reason)
}

// MultipartNotAllowed reports a MultiPolygon record when the manager was
// configured with AllowMultipart=false.
type MultipartNotAllowed struct {
	UID interface{}
}

func (e *MultipartNotAllowed) Error() string {
	return fmt.Sprintf("record %v is multipart but multipart geometries are not allowed", e.UID)
}

// NoInteriors is returned by the interior splitter when asked to split a
// geometry that has no holes. It is not necessarily fatal to a caller that
// treats "nothing to do" as success.
type NoInteriors struct {
	UID interface{}
}

func (e *NoInteriors) Error() string {
	return fmt.Sprintf("geometry %v has no interiors, nothing to split", e.UID)
}

// TooFewGeometries reports a dataset with fewer records than worker ranks.
type TooFewGeometries struct {
	NumGeometries int
	NumWorkers    int
}

func (e *TooFewGeometries) Error() string {
	return fmt.Sprintf("too few geometries (%d) for %d workers", e.NumGeometries, e.NumWorkers)
}

// ConnectivityParallelUnsupported reports an attempt to compute neighbor
// connectivity with more than one worker.
type ConnectivityParallelUnsupported struct {
	NumWorkers int
}

func (e *ConnectivityParallelUnsupported) Error() string {
	return fmt.Sprintf("connectivity computation requires a single worker, got %d", e.NumWorkers)
}

// WriterError wraps a failure from the ESMF container writer.
type WriterError struct {
	Phase string
	Err   error
}

func (e *WriterError) Error() string {
	return fmt.Sprintf("esmf writer (%s): %v", e.Phase, e.Err)
}

func (e *WriterError) Unwrap() error { return e.Err }
