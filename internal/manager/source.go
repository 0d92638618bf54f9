package manager

import "fmt"

// SliceSource is an in-memory Source backed by a plain slice of records,
// the manager's equivalent of passing `records=[...]` directly instead of
// a file path — used by tests and by callers that have already loaded
// their geometries by some other means.
type SliceSource struct {
	Records []Record
}

// Len implements Source.
func (s SliceSource) Len() int { return len(s.Records) }

// At implements Source.
func (s SliceSource) At(i int) (Record, error) {
	if i < 0 || i >= len(s.Records) {
		return Record{}, fmt.Errorf("index %d out of range [0,%d)", i, len(s.Records))
	}
	return s.Records[i], nil
}
