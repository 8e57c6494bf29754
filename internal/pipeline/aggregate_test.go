package pipeline

import (
	"errors"
	"testing"

	"go-review-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleDataset() *Dataset {
	return NewDataset([]model.Record{
		{Park: "A", Rating: 5},
		{Park: "A", Rating: 3},
		{Park: "B", Rating: 4},
	})
}

func TestGroupByPark(t *testing.T) {
	result := GroupBy(exampleDataset(), ByPark)
	require.Equal(t, 2, result.Len())

	a, err := result.Stats(model.NewGroupKey("A"))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Count)
	assert.Equal(t, 8.0, a.Sum)
	assert.InDelta(t, 4.0, a.Mean, 1e-9)
	assert.Equal(t, 3, a.Min)
	assert.Equal(t, 5, a.Max)

	b, err := result.Stats(model.NewGroupKey("B"))
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Count: 1, Sum: 4, Mean: 4, Min: 4, Max: 4}, b)
}

func TestGroupBySingleGroupMean(t *testing.T) {
	for _, ratings := range [][]int{{1}, {5, 5, 5}, {1, 2}, {1, 2, 2}, {3, 4, 4, 5, 1, 2, 2}} {
		records := make([]model.Record, len(ratings))
		sum := 0
		for i, r := range ratings {
			records[i] = model.Record{Park: "A", Rating: r}
			sum += r
		}
		mean, err := GroupBy(NewDataset(records), ByPark).Mean(model.NewGroupKey("A"))
		require.NoError(t, err)
		assert.InDelta(t, float64(sum)/float64(len(ratings)), mean, 1e-9, "%v", ratings)
	}
}

func TestGroupByMissingKeyIsEmptyGroup(t *testing.T) {
	result := GroupBy(exampleDataset(), ByPark)

	_, ok := result.Lookup(model.NewGroupKey("C"))
	assert.False(t, ok)

	_, err := result.Mean(model.NewGroupKey("C"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrEmptyGroup))

	_, err = GroupBy(NewDataset(nil), ByPark).Stats(model.NewGroupKey("A"))
	assert.True(t, errors.Is(err, model.ErrEmptyGroup))
}

func TestGroupByUnknownDimensions(t *testing.T) {
	result := GroupByDimensions(sampleDataset(), DimLocation)
	s, err := result.Stats(model.NewGroupKey(model.Unknown))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)

	years := GroupByDimensions(sampleDataset(), DimYear)
	assert.Equal(t, []model.GroupKey{"2018", "2019", model.Unknown}, years.Keys())
	assert.Equal(t, []string{"year"}, years.Dimensions())
}

func TestFilterThenGroupByMatchesSelect(t *testing.T) {
	ds := sampleDataset()
	for _, dim := range []Dimension{DimPark, DimLocation, DimYear, DimMonth} {
		full := GroupByDimensions(ds, DimPark, dim)
		for _, value := range []string{"Disneyland_Paris", "Australia", "2018", "04", model.Unknown} {
			filtered := GroupByDimensions(Filter(ds, DimensionEquals(dim, value)), DimPark, dim)
			selected := full.Select(func(k model.GroupKey) bool { return k.Parts()[1] == value })
			assert.Equal(t, selected.Results(), filtered.Results(), "%s=%s", dim, value)
		}
	}
}

func TestCountByTotalsDatasetSize(t *testing.T) {
	ds := sampleDataset()
	for _, key := range []KeyFunc{ByPark, ByLocation, ByYear, ByMonth, ByParkLocation} {
		total := 0
		for _, n := range CountBy(ds, key) {
			total += n
		}
		assert.Equal(t, ds.Len(), total)
	}
	assert.Equal(t, ds.Len(), GroupBy(ds, ByParkLocation).Total())
}

func TestGroupByIsRepeatable(t *testing.T) {
	ds := sampleDataset()
	assert.Equal(t, GroupBy(ds, ByParkLocation).Results(), GroupBy(ds, ByParkLocation).Results())
}

func TestResultsArePrimitive(t *testing.T) {
	rows := GroupByDimensions(exampleDataset(), DimPark).Results()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"park"}, rows[0].Dimensions)
	assert.Equal(t, []string{"A"}, rows[0].GroupValue)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, []string{"B"}, rows[1].GroupValue)
}

func TestParseDimensions(t *testing.T) {
	dims, err := ParseDimensions(" Park, location ,year")
	require.NoError(t, err)
	assert.Equal(t, []Dimension{DimPark, DimLocation, DimYear}, dims)

	_, err = ParseDimensions("park,colour")
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
	_, err = ParseDimensions("")
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
}

func TestDimensionValue(t *testing.T) {
	r := rec("Disneyland_Paris", "France", "2018-4", 4)
	assert.Equal(t, "Disneyland_Paris", DimPark.Value(r))
	assert.Equal(t, "France", DimLocation.Value(r))
	assert.Equal(t, "2018", DimYear.Value(r))
	assert.Equal(t, "04", DimMonth.Value(r))
	assert.Equal(t, "4", DimRating.Value(r))
	assert.Equal(t, model.Unknown, DimLocation.Value(model.Record{Park: "A"}))
}
