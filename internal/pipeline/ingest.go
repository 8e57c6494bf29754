package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"go-review-analytics/internal/model"
	"io"
	"os"
	"strconv"
	"strings"
)

// ------------------- Column Schema -------------------

// Columns lists, per Record field, the header names accepted for it.
// Matching is case-insensitive and ignores surrounding whitespace and quotes.
type Columns struct {
	ID       []string `yaml:"id"`
	Rating   []string `yaml:"rating"`
	Park     []string `yaml:"park"`
	Location []string `yaml:"location"`
	Date     []string `yaml:"date"`
	Text     []string `yaml:"text"`
}

// DefaultColumns matches the Disneyland reviews export and a few generic names.
func DefaultColumns() Columns {
	return Columns{
		ID:       []string{"review_id", "id"},
		Rating:   []string{"rating", "score"},
		Park:     []string{"branch", "park", "park_name"},
		Location: []string{"reviewer_location", "location"},
		Date:     []string{"year_month", "review_date", "date"},
		Text:     []string{"review_text", "text"},
	}
}

// Merge returns c with every empty alias list taken from fallback.
func (c Columns) Merge(fallback Columns) Columns {
	pick := func(a, b []string) []string {
		if len(a) > 0 {
			return a
		}
		return b
	}
	return Columns{
		ID:       pick(c.ID, fallback.ID),
		Rating:   pick(c.Rating, fallback.Rating),
		Park:     pick(c.Park, fallback.Park),
		Location: pick(c.Location, fallback.Location),
		Date:     pick(c.Date, fallback.Date),
		Text:     pick(c.Text, fallback.Text),
	}
}

// columnIndex holds the resolved header position of each field, -1 when absent.
type columnIndex struct {
	id, rating, park, location, date, text int

	// width is the number of header fields every row must carry.
	width int
}

func resolveColumns(header []string, cols Columns) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := positions[normalizeHeader(a)]; ok {
				return i
			}
		}
		return -1
	}

	idx := columnIndex{
		id:       find(cols.ID),
		rating:   find(cols.Rating),
		park:     find(cols.Park),
		location: find(cols.Location),
		date:     find(cols.Date),
		text:     find(cols.Text),
		width:    len(header),
	}
	if idx.rating < 0 {
		return idx, &model.ParseError{Row: 1, Reason: fmt.Sprintf("header has no rating column (want one of %v)", cols.Rating)}
	}
	if idx.park < 0 {
		return idx, &model.ParseError{Row: 1, Reason: fmt.Sprintf("header has no park column (want one of %v)", cols.Park)}
	}
	return idx, nil
}

// ------------------- Loading -------------------

// LoadResult is the outcome of one load: the dataset plus what had to be skipped.
type LoadResult struct {
	Dataset  *Dataset           `json:"-"`
	Skipped  int                `json:"skipped"`
	Warnings []model.ParseError `json:"warnings"`
}

// Load reads a delimited review file. It fails with *model.SourceNotFoundError when the
// file cannot be opened; malformed rows are skipped and reported in the result.
func Load(path string, cols Columns) (*LoadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &model.SourceNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &model.SourceNotFoundError{Path: path, Err: errors.New("is a directory")}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &model.SourceNotFoundError{Path: path, Err: err}
	}
	defer file.Close()

	res, err := LoadReader(file, cols)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return res, nil
}

// LoadReader parses reviews from r. The first row must be the header.
func LoadReader(r io.Reader, cols Columns) (*LoadResult, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, &model.ParseError{Row: 1, Reason: "source is empty, no header row"}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := resolveColumns(header, cols)
	if err != nil {
		return nil, err
	}

	res := &LoadResult{}
	var records []model.Record
	for {
		fields, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if !errors.As(err, &csvErr) {
				return nil, fmt.Errorf("read error: %w", err)
			}
			res.Warnings = append(res.Warnings, model.ParseError{Row: csvErr.StartLine, Reason: csvErr.Err.Error()})
			continue
		}

		row, _ := csvReader.FieldPos(0)
		rec, perr := parseRow(fields, idx, row)
		if perr != nil {
			res.Warnings = append(res.Warnings, *perr)
			continue
		}
		records = append(records, rec)
	}

	res.Skipped = len(res.Warnings)
	res.Dataset = newDatasetOwned(records)
	return res, nil
}

// parseRow converts one CSV row into a Record.
func parseRow(fields []string, idx columnIndex, row int) (model.Record, *model.ParseError) {
	if len(fields) != idx.width {
		return model.Record{}, &model.ParseError{
			Row:    row,
			Reason: fmt.Sprintf("expected %d fields, got %d", idx.width, len(fields)),
		}
	}

	field := func(i int) string {
		if i < 0 {
			return ""
		}
		return normalizeField(fields[i])
	}

	rawRating := field(idx.rating)
	rating, err := strconv.Atoi(rawRating)
	if err != nil {
		return model.Record{}, &model.ParseError{Row: row, Column: "rating", Value: rawRating, Reason: "not an integer"}
	}

	park := field(idx.park)
	if park == "" {
		return model.Record{}, &model.ParseError{Row: row, Column: "park", Reason: "missing park"}
	}

	location := field(idx.location)
	if location == "" || strings.EqualFold(location, missingMarker) {
		location = model.Unknown
	}

	return model.Record{
		ID:       field(idx.id),
		Rating:   rating,
		Park:     park,
		Location: location,
		Date:     model.ParseYearMonth(field(idx.date)),
		Text:     field(idx.text),
	}, nil
}
