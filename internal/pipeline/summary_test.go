package pipeline

import (
	"testing"

	"go-review-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	ds := NewDataset(append(sampleDataset().Records(),
		rec("Disneyland_California", "United States", "2019-8", 9),
		rec("Disneyland_California", "Canada", "2019-8", 4),
	))

	summary := Summary(ds)
	assert.Equal(t, 10, summary.TotalReviews)
	require.Len(t, summary.Parks, 3)

	ca := summary.Parks[0]
	assert.Equal(t, "Disneyland_California", ca.Park)
	assert.Equal(t, 3, ca.ReviewCount)
	assert.InDelta(t, 6.0, ca.AverageRating, 1e-9)
	assert.Equal(t, 4, ca.MinRating)
	assert.Equal(t, 9, ca.MaxRating)
	assert.Equal(t, [model.MaxRating]int{0, 0, 0, 1, 1}, ca.Distribution)
	assert.Equal(t, 1, ca.OutOfRange)
	assert.Equal(t, 2, ca.LocationCount)
	assert.Equal(t, "United States", ca.TopLocation)

	paris := summary.Parks[2]
	assert.Equal(t, "Disneyland_Paris", paris.Park)
	assert.Equal(t, [model.MaxRating]int{0, 1, 1, 1, 1}, paris.Distribution)
	assert.Zero(t, paris.OutOfRange)
	assert.Equal(t, 3, paris.LocationCount)
	assert.Equal(t, "United Kingdom", paris.TopLocation)

	hk := summary.Parks[1]
	assert.Equal(t, "Australia", hk.TopLocation)
}

func TestSummaryEmpty(t *testing.T) {
	summary := Summary(NewDataset(nil))
	assert.Zero(t, summary.TotalReviews)
	assert.NotNil(t, summary.Parks)
	assert.Empty(t, summary.Parks)
}
