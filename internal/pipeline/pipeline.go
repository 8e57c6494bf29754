// Package pipeline is the review analytics core: it loads reviews into an immutable
// Dataset, groups and reduces them, and ranks the groups. Nothing here logs or
// touches global state; every operation takes the Dataset it works on.
package pipeline

import "go-review-analytics/internal/model"

// Dataset is an ordered, read-only sequence of records. Filtering yields a new
// Dataset that shares the loaded records and holds its own index list.
type Dataset struct {
	records []model.Record
	index   []int // nil selects every record, in load order
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []model.Record) *Dataset {
	owned := make([]model.Record, len(records))
	copy(owned, records)
	return newDatasetOwned(owned)
}

// newDatasetOwned takes ownership of records without copying.
func newDatasetOwned(records []model.Record) *Dataset {
	if records == nil {
		records = []model.Record{}
	}
	return &Dataset{records: records}
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	if d.index == nil {
		return len(d.records)
	}
	return len(d.index)
}

// At returns a copy of the i-th record.
func (d *Dataset) At(i int) model.Record {
	if d.index == nil {
		return d.records[i]
	}
	return d.records[d.index[i]]
}

// Records returns a freshly allocated copy of the records, in order.
func (d *Dataset) Records() []model.Record {
	out := make([]model.Record, d.Len())
	for i := range out {
		out[i] = d.At(i)
	}
	return out
}

// Predicate selects records.
type Predicate func(model.Record) bool

// Filter returns the records of ds satisfying pred, keeping their order.
// ds is not modified.
func Filter(ds *Dataset, pred Predicate) *Dataset {
	n := ds.Len()
	index := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if pred(ds.At(i)) {
			if ds.index == nil {
				index = append(index, i)
			} else {
				index = append(index, ds.index[i])
			}
		}
	}
	var records []model.Record
	if ds != nil {
		records = ds.records
	}
	return &Dataset{records: records, index: index}
}

// And combines predicates; a record must satisfy all of them.
func And(preds ...Predicate) Predicate {
	return func(r model.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
