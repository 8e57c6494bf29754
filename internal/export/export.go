// Package export serializes review summaries to TXT, CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"go-review-analytics/internal/model"
	"go-review-analytics/pkg/utils"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format is a closed set of export formats.
type Format int

const (
	TXT Format = iota
	CSV
	JSON
)

var formatNames = map[Format]string{TXT: "txt", CSV: "csv", JSON: "json"}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Extension returns the file extension, dot included.
func (f Format) Extension() string { return "." + f.String() }

// Formats lists every supported format in menu order.
func Formats() []Format { return []Format{TXT, CSV, JSON} }

// ParseFormat accepts a format name such as "csv" or ".json".
func ParseFormat(name string) (Format, error) {
	n := strings.TrimPrefix(utils.NormalizeText(name), ".")
	for f, fn := range formatNames {
		if fn == n {
			return f, nil
		}
	}
	return 0, model.InvalidArgument("format", name, "want txt, csv or json")
}

// Envelope carries run metadata alongside the summary.
type Envelope struct {
	RunID      string        `json:"run_id"`
	ExportedAt time.Time     `json:"exported_at"`
	Summary    model.Summary `json:"data"`
}

type serializer func(w io.Writer, env Envelope) error

var serializers = map[Format]serializer{
	TXT:  writeTXT,
	CSV:  writeCSV,
	JSON: writeJSON,
}

// Serialize writes env to w in format f.
func Serialize(w io.Writer, env Envelope, f Format) error {
	fn, ok := serializers[f]
	if !ok {
		return model.InvalidArgument("format", f.String(), "no serializer")
	}
	return fn(w, env)
}

// ------------------- Serializers -------------------

func writeTXT(w io.Writer, env Envelope) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "  PARK REVIEWS SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Run:           %s\n", env.RunID)
	fmt.Fprintf(&b, "Exported at:   %s\n", env.ExportedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total reviews: %d\n", env.Summary.TotalReviews)

	for _, p := range env.Summary.Parks {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "PARK: %s\n", p.Park)
		fmt.Fprintln(&b, strings.Repeat("-", 30))
		fmt.Fprintf(&b, "Reviews:        %d\n", p.ReviewCount)
		fmt.Fprintf(&b, "Average rating: %.2f/5\n", p.AverageRating)
		fmt.Fprintf(&b, "Lowest/highest: %d/%d\n", p.MinRating, p.MaxRating)
		for i, n := range p.Distribution {
			fmt.Fprintf(&b, "  %d star: %d\n", i+1, n)
		}
		if p.OutOfRange > 0 {
			fmt.Fprintf(&b, "  off scale: %d\n", p.OutOfRange)
		}
		fmt.Fprintf(&b, "Locations:      %d (most reviews: %s)\n", p.LocationCount, p.TopLocation)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var csvHeader = []string{
	"park", "review_count", "average_rating", "min_rating", "max_rating",
	"rating_1", "rating_2", "rating_3", "rating_4", "rating_5",
	"out_of_range", "location_count", "top_location",
}

func writeCSV(w io.Writer, env Envelope) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range env.Summary.Parks {
		row := []string{
			p.Park,
			strconv.Itoa(p.ReviewCount),
			strconv.FormatFloat(p.AverageRating, 'f', 4, 64),
			strconv.Itoa(p.MinRating),
			strconv.Itoa(p.MaxRating),
		}
		for _, n := range p.Distribution {
			row = append(row, strconv.Itoa(n))
		}
		row = append(row, strconv.Itoa(p.OutOfRange), strconv.Itoa(p.LocationCount), p.TopLocation)

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeJSON(w io.Writer, env Envelope) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"run_id":       env.RunID,
			"exported_at":  env.ExportedAt.UTC(),
			"record_count": len(env.Summary.Parks),
			"export_type":  "park_summary",
		},
		"data": env.Summary,
	}
	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ------------------- File Export -------------------

// HistoryRecorder persists completed exports.
type HistoryRecorder interface {
	RecordExport(result model.ExportResult, summary model.Summary) error
}

// Exporter writes summaries to files under a per-run output directory.
type Exporter struct {
	Output   *utils.OutputManager
	BaseName string
	History  HistoryRecorder // optional

	now   func() time.Time
	newID func() string
}

// NewExporter creates an exporter writing below dir.
func NewExporter(dir, baseName string, history HistoryRecorder) *Exporter {
	return &Exporter{
		Output:   utils.NewOutputManager(dir),
		BaseName: baseName,
		History:  history,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Export writes summary in format f and returns what happened. Failures are
// reported in the result rather than as an error, the way the menu shows them.
func (e *Exporter) Export(summary model.Summary, f Format) model.ExportResult {
	env := Envelope{RunID: e.newID(), ExportedAt: e.now().UTC(), Summary: summary}
	result := model.ExportResult{
		RunID:      env.RunID,
		Format:     f.String(),
		ExportedAt: env.ExportedAt,
	}

	path, err := e.writeFile(env, f)
	result.Path = path
	if err == nil && e.History != nil {
		if herr := e.History.RecordExport(model.ExportResult{
			RunID: env.RunID, Format: f.String(), Path: path,
			RecordCount: len(summary.Parks), Success: true, ExportedAt: env.ExportedAt,
		}, summary); herr != nil {
			err = fmt.Errorf("recording export history: %w", herr)
		}
	}

	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	result.RecordCount = len(summary.Parks)
	return result
}

func (e *Exporter) writeFile(env Envelope, f Format) (string, error) {
	path, err := e.Output.GetOutputFilePath(env.RunID, e.BaseName+f.Extension())
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("failed to create file: %w", err)
	}

	if err := Serialize(file, env, f); err != nil {
		file.Close()
		return path, err
	}
	if err := file.Close(); err != nil {
		return path, fmt.Errorf("failed to close file: %w", err)
	}
	return path, nil
}
