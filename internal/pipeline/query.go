package pipeline

import (
	"fmt"
	"go-review-analytics/internal/model"
	"go-review-analytics/pkg/utils"
	"strconv"
	"strings"
)

// ------------------- Predicates -------------------

// MatchPark selects records whose park contains query, ignoring case and
// surrounding whitespace, so "paris" matches "Disneyland_Paris". An empty
// query matches nothing.
func MatchPark(query string) Predicate {
	return containsFold(query, func(r model.Record) string { return r.Park })
}

// MatchLocation selects records whose reviewer location contains query, like MatchPark.
func MatchLocation(query string) Predicate {
	return containsFold(query, func(r model.Record) string { return r.Location })
}

func containsFold(query string, field func(model.Record) string) Predicate {
	q := utils.NormalizeText(query)
	if q == "" {
		return func(model.Record) bool { return false }
	}
	return func(r model.Record) bool {
		return strings.Contains(utils.NormalizeText(field(r)), q)
	}
}

// InYear selects records reviewed in year. Records with an unknown year never match.
func InYear(year int) Predicate {
	return func(r model.Record) bool { return r.Date.HasYear() && r.Date.Year == year }
}

// DimensionEquals selects records whose dimension value is exactly value.
func DimensionEquals(d Dimension, value string) Predicate {
	return func(r model.Record) bool { return d.Value(r) == value }
}

// ParseYear accepts a four digit year.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, model.InvalidArgument("year", s, "want four digits (YYYY)")
	}
	y, err := strconv.Atoi(s)
	if err != nil || y <= 0 {
		return 0, model.InvalidArgument("year", s, "want four digits (YYYY)")
	}
	return y, nil
}

func requireName(kind, value string) error {
	if utils.NormalizeText(value) == "" {
		return model.InvalidArgument(kind, value, "must not be empty")
	}
	return nil
}

// ------------------- Review Queries -------------------

// ReviewsForPark returns the reviews of the matching park, in load order.
func ReviewsForPark(ds *Dataset, park string) (*Dataset, error) {
	if err := requireName("park", park); err != nil {
		return nil, err
	}
	return Filter(ds, MatchPark(park)), nil
}

// CountByParkAndLocation counts the reviews a park received from a reviewer location.
func CountByParkAndLocation(ds *Dataset, park, location string) (int, error) {
	if err := requireName("park", park); err != nil {
		return 0, err
	}
	if err := requireName("location", location); err != nil {
		return 0, err
	}
	return Filter(ds, And(MatchPark(park), MatchLocation(location))).Len(), nil
}

// AverageRatingByYear returns the mean rating of a park in a year. It fails with
// *model.EmptyGroupError when the park has no reviews that year.
func AverageRatingByYear(ds *Dataset, park, year string) (float64, error) {
	if err := requireName("park", park); err != nil {
		return 0, err
	}
	y, err := ParseYear(year)
	if err != nil {
		return 0, err
	}

	key := model.NewGroupKey(strings.TrimSpace(park), strconv.Itoa(y))
	subset := Filter(ds, And(MatchPark(park), InYear(y)))
	result := GroupBy(subset, func(model.Record) model.GroupKey { return key })
	return result.Mean(key)
}

// ReviewsPerPark counts reviews per park; the input of the distribution pie chart.
func ReviewsPerPark(ds *Dataset) map[string]int {
	counts := CountBy(ds, ByPark)
	out := make(map[string]int, len(counts))
	for k, n := range counts {
		out[string(k)] = n
	}
	return out
}

// TopLocationsByRating ranks the reviewer locations of a park by mean rating.
func TopLocationsByRating(ds *Dataset, park string, n int) ([]RankedGroup, error) {
	if err := requireName("park", park); err != nil {
		return nil, err
	}
	result := GroupByDimensions(Filter(ds, MatchPark(park)), DimLocation)
	return TopN(result, MetricMean, n)
}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyAverages returns twelve entries, January first, with the park's mean rating per
// calendar month. Months without reviews carry HasData=false and a zero Mean.
func MonthlyAverages(ds *Dataset, park string) ([]model.MonthlyAverage, error) {
	if err := requireName("park", park); err != nil {
		return nil, err
	}
	result := GroupByDimensions(Filter(ds, MatchPark(park)), DimMonth)

	out := make([]model.MonthlyAverage, 12)
	for i := range out {
		m := i + 1
		entry := model.MonthlyAverage{Month: m, Label: monthLabels[i]}
		if s, ok := result.Lookup(model.NewGroupKey(fmt.Sprintf("%02d", m))); ok {
			entry.Count = s.Count
			entry.Mean = s.Mean
			entry.HasData = true
		}
		out[i] = entry
	}
	return out, nil
}

// ParkLocationAverages returns, per park, the mean rating from every reviewer location.
// Parks and locations are in ascending order.
func ParkLocationAverages(ds *Dataset) []model.ParkLocations {
	result := GroupByDimensions(ds, DimPark, DimLocation)

	var out []model.ParkLocations
	for _, key := range result.Keys() {
		parts := key.Parts()
		s, _ := result.Lookup(key)
		if len(out) == 0 || out[len(out)-1].Park != parts[0] {
			out = append(out, model.ParkLocations{Park: parts[0]})
		}
		last := &out[len(out)-1]
		last.Locations = append(last.Locations, model.LocationAverage{Location: parts[1], Count: s.Count, Mean: s.Mean})
	}
	if out == nil {
		out = []model.ParkLocations{}
	}
	return out
}

// ------------------- Generic Ranking Query -------------------

// Query describes a ranking over arbitrary dimensions, optionally restricted to a
// park and a year first.
type Query struct {
	Dimensions []Dimension `json:"dimensions"`
	Metric     Metric      `json:"metric"`
	N          int         `json:"n"`
	Park       string      `json:"park,omitempty"`
	Year       string      `json:"year,omitempty"`
}

// TopGroups runs q: filter, group, rank, truncate.
func TopGroups(ds *Dataset, q Query) ([]RankedGroup, error) {
	if len(q.Dimensions) == 0 {
		return nil, model.InvalidArgument("dimensions", "", "at least one dimension is required")
	}

	var preds []Predicate
	if strings.TrimSpace(q.Park) != "" {
		preds = append(preds, MatchPark(q.Park))
	}
	if strings.TrimSpace(q.Year) != "" {
		y, err := ParseYear(q.Year)
		if err != nil {
			return nil, err
		}
		preds = append(preds, InYear(y))
	}

	subset := ds
	if len(preds) > 0 {
		subset = Filter(ds, And(preds...))
	}
	return TopN(GroupByDimensions(subset, q.Dimensions...), q.Metric, q.N)
}
