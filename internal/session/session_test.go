package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go-review-analytics/internal/model"
	"go-review-analytics/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsCSV = `Review_ID,Rating,Year_Month,Reviewer_Location,Review_Text,Branch
1,4,2019-4,Australia,good,Disneyland_HongKong
1,4,2019-4,Australia,good,Disneyland_HongKong
3,bad,2019-4,Australia,bad row,Disneyland_HongKong
4,9,missing,,odd,Disneyland_Paris
`

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(reviewsCSV), 0644))

	s, err := Open(path, pipeline.DefaultColumns())
	require.NoError(t, err)

	info := s.Info()
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, path, info.Source)
	assert.Equal(t, 3, info.Reviews)
	assert.Equal(t, 1, info.Skipped)
	assert.Equal(t, 1, info.OutOfRange)
	assert.Equal(t, 1, info.Duplicates)
	assert.Equal(t, 1, info.UnknownLocation)
	assert.Equal(t, 1, info.UnknownDate)
	require.Len(t, s.Warnings, 1)
	assert.Equal(t, 4, s.Warnings[0].Row)
}

func TestOpenMissingSource(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"), pipeline.DefaultColumns())
	assert.True(t, errors.Is(err, model.ErrSourceNotFound))
}

func TestTrackRecordsMetrics(t *testing.T) {
	res, err := pipeline.LoadReader(strings.NewReader(reviewsCSV), pipeline.DefaultColumns())
	require.NoError(t, err)
	s := New("memory", res)

	require.NoError(t, s.Track("summary", func() error { return nil }))
	boom := errors.New("boom")
	assert.Equal(t, boom, s.Track("average", func() error { return boom }))
	require.NoError(t, s.Track("summary", func() error { return nil }))

	metrics := s.Metrics()
	require.Len(t, metrics, 2)
	assert.Equal(t, "average", metrics[0].Name)
	assert.Equal(t, int64(1), metrics[0].Calls)
	assert.Equal(t, int64(1), metrics[0].Errors)
	assert.Equal(t, "boom", metrics[0].LastError)
	assert.Equal(t, "summary", metrics[1].Name)
	assert.Equal(t, int64(2), metrics[1].Calls)
	assert.Zero(t, metrics[1].Errors)
}

func TestConcurrentQueries(t *testing.T) {
	res, err := pipeline.LoadReader(strings.NewReader(reviewsCSV), pipeline.DefaultColumns())
	require.NoError(t, err)
	s := New("memory", res)
	want := pipeline.Summary(s.Dataset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Track("summary", func() error {
				assert.Equal(t, want, pipeline.Summary(s.Dataset))
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8), s.Metrics()[0].Calls)
}
