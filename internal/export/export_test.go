package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-review-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleSummary() model.Summary {
	return model.Summary{
		TotalReviews: 7,
		Parks: []model.ParkSummary{
			{
				Park: "Disneyland_HongKong", ReviewCount: 3, AverageRating: 4.0, MinRating: 3, MaxRating: 5,
				Distribution: [model.MaxRating]int{0, 0, 1, 1, 1}, LocationCount: 2, TopLocation: "Australia",
			},
			{
				Park: "Disneyland_Paris", ReviewCount: 4, AverageRating: 3.5, MinRating: 2, MaxRating: 5,
				Distribution: [model.MaxRating]int{0, 1, 1, 1, 1}, LocationCount: 3, TopLocation: "United Kingdom",
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
	}{{"txt", TXT}, {"CSV", CSV}, {".json", JSON}, {" json ", JSON}} {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, []Format{TXT, CSV, JSON}, Formats())
	assert.Equal(t, ".csv", CSV.Extension())
	assert.Equal(t, "format(9)", Format(9).String())

	err := Serialize(&bytes.Buffer{}, Envelope{}, Format(9))
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
}

func TestSerializeTXT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, Envelope{RunID: "run-1", ExportedAt: exportedAt, Summary: sampleSummary()}, TXT))

	out := buf.String()
	assert.Contains(t, out, "PARK REVIEWS SUMMARY")
	assert.Contains(t, out, "Run:           run-1")
	assert.Contains(t, out, "2024-05-01T12:00:00Z")
	assert.Contains(t, out, "PARK: Disneyland_Paris")
	assert.Contains(t, out, "Average rating: 3.50/5")
	assert.Contains(t, out, "(most reviews: United Kingdom)")
	assert.NotContains(t, out, "off scale")
}

func TestSerializeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, Envelope{Summary: sampleSummary()}, CSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"Disneyland_HongKong", "3", "4.0000", "3", "5", "0", "0", "1", "1", "1", "0", "2", "Australia",
	}, rows[1])
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, Envelope{RunID: "run-1", ExportedAt: exportedAt, Summary: sampleSummary()}, JSON))

	var decoded struct {
		ExportInfo struct {
			RunID       string `json:"run_id"`
			RecordCount int    `json:"record_count"`
			ExportType  string `json:"export_type"`
		} `json:"export_info"`
		Data model.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.ExportInfo.RunID)
	assert.Equal(t, 2, decoded.ExportInfo.RecordCount)
	assert.Equal(t, "park_summary", decoded.ExportInfo.ExportType)
	assert.Equal(t, sampleSummary(), decoded.Data)
}

type fakeHistory struct {
	results []model.ExportResult
	err     error
}

func (f *fakeHistory) RecordExport(result model.ExportResult, summary model.Summary) error {
	f.results = append(f.results, result)
	return f.err
}

func newTestExporter(t *testing.T, history HistoryRecorder) *Exporter {
	e := NewExporter(t.TempDir(), "park_reviews_summary", history)
	e.now = func() time.Time { return exportedAt }
	e.newID = func() string { return "run-1" }
	return e
}

func TestExporterWritesFiles(t *testing.T) {
	history := &fakeHistory{}
	e := newTestExporter(t, history)

	for _, f := range Formats() {
		result := e.Export(sampleSummary(), f)
		require.True(t, result.Success, result.Error)
		assert.Equal(t, filepath.Join(e.Output.BaseOutputDir, "run-1", "park_reviews_summary"+f.Extension()), result.Path)
		assert.Equal(t, 2, result.RecordCount)
		assert.Equal(t, f.String(), result.Format)
		assert.Equal(t, exportedAt, result.ExportedAt)

		data, err := os.ReadFile(result.Path)
		require.NoError(t, err)
		var want bytes.Buffer
		require.NoError(t, Serialize(&want, Envelope{RunID: "run-1", ExportedAt: exportedAt, Summary: sampleSummary()}, f))
		assert.Equal(t, want.String(), string(data))
	}

	require.Len(t, history.results, 3)
	assert.True(t, history.results[0].Success)
}

func TestExporterReportsFailures(t *testing.T) {
	e := newTestExporter(t, &fakeHistory{err: errors.New("disk full")})
	result := e.Export(sampleSummary(), CSV)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "disk full")
	assert.Zero(t, result.RecordCount)

	// base dir is a file, so the run directory cannot be created
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	e = NewExporter(blocker, "summary", nil)
	result = e.Export(sampleSummary(), TXT)
	assert.False(t, result.Success)
	assert.True(t, strings.Contains(result.Error, "failed to create run output directory"), result.Error)
}
