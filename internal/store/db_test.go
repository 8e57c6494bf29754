package store

import (
	"path/filepath"
	"testing"
	"time"

	"go-review-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "exports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListExports(t *testing.T) {
	s := openTestStore(t)

	older := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	summary := model.Summary{
		TotalReviews: 5,
		Parks: []model.ParkSummary{
			{Park: "Disneyland_Paris", ReviewCount: 3, AverageRating: 3.5, MinRating: 2, MaxRating: 5,
				Distribution: [model.MaxRating]int{0, 1, 0, 1, 1}, LocationCount: 2, TopLocation: "France"},
			{Park: "Disneyland_HongKong", ReviewCount: 2, AverageRating: 4.5, MinRating: 4, MaxRating: 5,
				Distribution: [model.MaxRating]int{0, 0, 0, 1, 1}, OutOfRange: 0, LocationCount: 1, TopLocation: "Australia"},
		},
	}

	require.NoError(t, s.RecordExport(model.ExportResult{
		RunID: "run-a", Format: "csv", Path: "exports/run-a/s.csv", RecordCount: 2, Success: true, ExportedAt: older,
	}, summary))
	require.NoError(t, s.RecordExport(model.ExportResult{
		RunID: "run-b", Format: "json", Path: "exports/run-b/s.json", RecordCount: 0, Success: true, ExportedAt: newer,
	}, model.Summary{}))

	runs, err := s.ListExports()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].RunID)
	assert.Equal(t, "run-a", runs[1].RunID)
	assert.Equal(t, "csv", runs[1].Format)
	assert.True(t, runs[1].Success)
	assert.Equal(t, 2, runs[1].RecordCount)
	assert.True(t, older.Equal(runs[1].ExportedAt))

	parks, err := s.GetSummary("run-a")
	require.NoError(t, err)
	require.Len(t, parks, 2)
	assert.Equal(t, summary.Parks[1], parks[0], "ordered by park")
	assert.Equal(t, summary.Parks[0], parks[1])

	none, err := s.GetSummary("run-missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordExportDuplicateRunFails(t *testing.T) {
	s := openTestStore(t)
	result := model.ExportResult{RunID: "run-a", Format: "txt", ExportedAt: time.Now()}

	require.NoError(t, s.RecordExport(result, model.Summary{}))
	assert.Error(t, s.RecordExport(result, model.Summary{}))
}

func TestListExportsEmpty(t *testing.T) {
	runs, err := openTestStore(t).ListExports()
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}
