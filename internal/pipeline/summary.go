package pipeline

import (
	"go-review-analytics/internal/model"
	"strconv"
)

// Summary prepares the per-park bundle handed to the export collaborator.
// Parks are in ascending order; TopLocation is the location with the most reviews.
func Summary(ds *Dataset) model.Summary {
	byPark := GroupByDimensions(ds, DimPark)
	byRating := CountBy(ds, KeyBy(DimPark, DimRating))
	byLocation := GroupByDimensions(ds, DimPark, DimLocation)

	summary := model.Summary{TotalReviews: ds.Len(), Parks: []model.ParkSummary{}}
	for _, key := range byPark.Keys() {
		park := string(key)
		stats, _ := byPark.Lookup(key)

		ps := model.ParkSummary{
			Park:          park,
			ReviewCount:   stats.Count,
			AverageRating: stats.Mean,
			MinRating:     stats.Min,
			MaxRating:     stats.Max,
		}

		inRange := 0
		for r := model.MinRating; r <= model.MaxRating; r++ {
			n := byRating[model.NewGroupKey(park, strconv.Itoa(r))]
			ps.Distribution[r-1] = n
			inRange += n
		}
		ps.OutOfRange = stats.Count - inRange

		locations := byLocation.Select(func(k model.GroupKey) bool { return k.Parts()[0] == park })
		ps.LocationCount = locations.Len()
		if top, err := TopN(locations, MetricCount, 1); err == nil && len(top) == 1 {
			ps.TopLocation = top[0].Group[1]
		}

		summary.Parks = append(summary.Parks, ps)
	}
	return summary
}
