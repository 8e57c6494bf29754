package model

import (
	"strings"
	"time"
)

// keySep separates the dimension values inside a GroupKey. It sorts below every
// printable character, so comparing encoded keys compares their parts in order.
const keySep = "\x1f"

// GroupKey identifies an aggregation bucket: a tuple of one or more dimension values.
// It is comparable and usable as a map key.
type GroupKey string

// NewGroupKey builds a key from its dimension values.
func NewGroupKey(parts ...string) GroupKey {
	return GroupKey(strings.Join(parts, keySep))
}

// Parts returns the dimension values of the key.
func (k GroupKey) Parts() []string {
	return strings.Split(string(k), keySep)
}

// String renders the key for humans, e.g. "Disneyland_Paris / France".
func (k GroupKey) String() string {
	return strings.ReplaceAll(string(k), keySep, " / ")
}

// CompareKeys orders keys lexicographically, part by part.
func CompareKeys(a, b GroupKey) int {
	pa, pb := a.Parts(), b.Parts()
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// Stats is the statistics bundle of one group. Count is always > 0 for a
// materialised group, so Mean is always defined.
type Stats struct {
	Count int     `json:"count" yaml:"count"`
	Sum   float64 `json:"sum" yaml:"sum"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Min   int     `json:"min" yaml:"min"`
	Max   int     `json:"max" yaml:"max"`
}

// AggregatedResult is the primitive form of one group handed to rendering and
// export collaborators.
type AggregatedResult struct {
	Dimensions []string `json:"dimensions" yaml:"dimensions"`
	GroupValue []string `json:"group_value" yaml:"group_value"`

	Stats `yaml:",inline"`
}

// MonthlyAverage is one bar of the month-of-year chart.
type MonthlyAverage struct {
	Month   int     `json:"month" yaml:"month"`
	Label   string  `json:"label" yaml:"label"`
	Count   int     `json:"count" yaml:"count"`
	Mean    float64 `json:"mean" yaml:"mean"`
	HasData bool    `json:"has_data" yaml:"has_data"`
}

// LocationAverage is the mean rating a park received from one reviewer location.
type LocationAverage struct {
	Location string  `json:"location" yaml:"location"`
	Count    int     `json:"count" yaml:"count"`
	Mean     float64 `json:"mean" yaml:"mean"`
}

// ParkLocations lists a park's location averages in ascending location order.
type ParkLocations struct {
	Park      string            `json:"park" yaml:"park"`
	Locations []LocationAverage `json:"locations" yaml:"locations"`
}

// ParkSummary is the per-park bundle handed to the export collaborator.
type ParkSummary struct {
	Park          string  `json:"park" yaml:"park"`
	ReviewCount   int     `json:"review_count" yaml:"review_count"`
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`
	MinRating     int     `json:"min_rating" yaml:"min_rating"`
	MaxRating     int     `json:"max_rating" yaml:"max_rating"`
	OutOfRange    int     `json:"out_of_range" yaml:"out_of_range"`
	LocationCount int     `json:"location_count" yaml:"location_count"`
	TopLocation   string  `json:"top_location" yaml:"top_location"`

	// Distribution counts reviews per rating value, index 0 holding rating 1.
	Distribution [MaxRating]int `json:"distribution" yaml:"distribution"`
}

// Summary is the complete export payload.
type Summary struct {
	TotalReviews int           `json:"total_reviews" yaml:"total_reviews"`
	Parks        []ParkSummary `json:"parks" yaml:"parks"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	RunID       string    `json:"run_id"`
	Format      string    `json:"format"` // "txt", "csv", "json"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}
