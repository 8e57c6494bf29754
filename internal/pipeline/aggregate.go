package pipeline

import (
	"go-review-analytics/internal/model"
	"sort"
	"strconv"
	"strings"
)

// ------------------- Dimensions -------------------

// KeyFunc maps a record to the group it belongs to. It must be pure.
type KeyFunc func(model.Record) model.GroupKey

// Dimension is a named categorical attribute of a record.
type Dimension string

const (
	DimPark     Dimension = "park"
	DimLocation Dimension = "location"
	DimYear     Dimension = "year"
	DimMonth    Dimension = "month"
	DimRating   Dimension = "rating"
)

// Value extracts the dimension value of r. Missing locations and dates yield model.Unknown.
func (d Dimension) Value(r model.Record) string {
	switch d {
	case DimPark:
		return r.Park
	case DimLocation:
		if !r.HasLocation() {
			return model.Unknown
		}
		return r.Location
	case DimYear:
		return r.Date.YearKey()
	case DimMonth:
		return r.Date.MonthKey()
	case DimRating:
		return strconv.Itoa(r.Rating)
	}
	return ""
}

func (d Dimension) valid() bool {
	switch d {
	case DimPark, DimLocation, DimYear, DimMonth, DimRating:
		return true
	}
	return false
}

// ParseDimensions parses a comma separated list such as "park,location".
func ParseDimensions(list string) ([]Dimension, error) {
	var dims []Dimension
	for _, name := range strings.Split(list, ",") {
		d := Dimension(strings.ToLower(strings.TrimSpace(name)))
		if !d.valid() {
			return nil, model.InvalidArgument("dimension", name, "want park, location, year, month or rating")
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// KeyBy groups on the given dimensions, in order.
func KeyBy(dims ...Dimension) KeyFunc {
	return func(r model.Record) model.GroupKey {
		parts := make([]string, len(dims))
		for i, d := range dims {
			parts[i] = d.Value(r)
		}
		return model.NewGroupKey(parts...)
	}
}

// Common keys.
var (
	ByPark         = KeyBy(DimPark)
	ByLocation     = KeyBy(DimLocation)
	ByYear         = KeyBy(DimYear)
	ByMonth        = KeyBy(DimMonth)
	ByParkLocation = KeyBy(DimPark, DimLocation)
)

// ------------------- Aggregation -------------------

// accumulator collects rating statistics. Ratings are integers, so the sum is exact.
type accumulator struct {
	count    int
	sum      int64
	min, max int
}

func (a *accumulator) add(rating int) {
	if a.count == 0 || rating < a.min {
		a.min = rating
	}
	if a.count == 0 || rating > a.max {
		a.max = rating
	}
	a.count++
	a.sum += int64(rating)
}

func (a *accumulator) stats() model.Stats {
	return model.Stats{
		Count: a.count,
		Sum:   float64(a.sum),
		Mean:  float64(a.sum) / float64(a.count),
		Min:   a.min,
		Max:   a.max,
	}
}

// AggregateResult maps each non-empty group to its rating statistics. A key that is
// absent means "no data"; groups with zero records are never stored.
type AggregateResult struct {
	dimensions []Dimension
	groups     map[model.GroupKey]model.Stats
}

// GroupBy partitions ds with keyFn and reduces the ratings of each group in one pass.
func GroupBy(ds *Dataset, keyFn KeyFunc) *AggregateResult {
	acc := make(map[model.GroupKey]*accumulator)
	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		key := keyFn(rec)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
		}
		a.add(rec.Rating)
	}

	groups := make(map[model.GroupKey]model.Stats, len(acc))
	for key, a := range acc {
		groups[key] = a.stats()
	}
	return &AggregateResult{groups: groups}
}

// GroupByDimensions is GroupBy over KeyBy(dims...), remembering the dimension names.
func GroupByDimensions(ds *Dataset, dims ...Dimension) *AggregateResult {
	res := GroupBy(ds, KeyBy(dims...))
	res.dimensions = append([]Dimension(nil), dims...)
	return res
}

// CountBy counts the records of each group.
func CountBy(ds *Dataset, keyFn KeyFunc) map[model.GroupKey]int {
	counts := make(map[model.GroupKey]int)
	for i := 0; i < ds.Len(); i++ {
		counts[keyFn(ds.At(i))]++
	}
	return counts
}

// Len returns the number of groups.
func (a *AggregateResult) Len() int { return len(a.groups) }

// Dimensions returns the dimension names the result was grouped by, if known.
func (a *AggregateResult) Dimensions() []string {
	names := make([]string, len(a.dimensions))
	for i, d := range a.dimensions {
		names[i] = string(d)
	}
	return names
}

// Keys returns the group keys in ascending lexicographic order.
func (a *AggregateResult) Keys() []model.GroupKey {
	keys := make([]model.GroupKey, 0, len(a.groups))
	for k := range a.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return model.CompareKeys(keys[i], keys[j]) < 0 })
	return keys
}

// Lookup returns the statistics of key and whether the group has data.
func (a *AggregateResult) Lookup(key model.GroupKey) (model.Stats, bool) {
	s, ok := a.groups[key]
	return s, ok
}

// Stats returns the statistics of key, or *model.EmptyGroupError when it has no data.
func (a *AggregateResult) Stats(key model.GroupKey) (model.Stats, error) {
	s, ok := a.groups[key]
	if !ok {
		return model.Stats{}, &model.EmptyGroupError{Key: key.String()}
	}
	return s, nil
}

// Mean returns the mean rating of key, or *model.EmptyGroupError when it has no data.
func (a *AggregateResult) Mean(key model.GroupKey) (float64, error) {
	s, err := a.Stats(key)
	if err != nil {
		return 0, err
	}
	return s.Mean, nil
}

// Total returns the number of records across all groups.
func (a *AggregateResult) Total() int {
	total := 0
	for _, s := range a.groups {
		total += s.Count
	}
	return total
}

// Select returns a new result holding only the groups whose key satisfies keep.
func (a *AggregateResult) Select(keep func(model.GroupKey) bool) *AggregateResult {
	groups := make(map[model.GroupKey]model.Stats)
	for k, s := range a.groups {
		if keep(k) {
			groups[k] = s
		}
	}
	return &AggregateResult{dimensions: a.dimensions, groups: groups}
}

// Results flattens the result into primitive rows ordered by key.
func (a *AggregateResult) Results() []model.AggregatedResult {
	dims := a.Dimensions()
	out := make([]model.AggregatedResult, 0, len(a.groups))
	for _, k := range a.Keys() {
		out = append(out, model.AggregatedResult{
			Dimensions: dims,
			GroupValue: k.Parts(),
			Stats:      a.groups[k],
		})
	}
	return out
}
