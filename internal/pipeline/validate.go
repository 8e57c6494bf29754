package pipeline

import "go-review-analytics/internal/model"

// QualityRules defines what the quality report flags. Flagged records stay in the dataset.
type QualityRules struct {
	MinRating int `json:"minRating" yaml:"min_rating"`
	MaxRating int `json:"maxRating" yaml:"max_rating"`
}

// DefaultQualityRules flags ratings off the 1-5 scale.
func DefaultQualityRules() QualityRules {
	return QualityRules{MinRating: model.MinRating, MaxRating: model.MaxRating}
}

// QualityIssue points at one flagged record by its dataset index.
type QualityIssue struct {
	Index  int    `json:"index" yaml:"index"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Park   string `json:"park" yaml:"park"`
	Rating int    `json:"rating" yaml:"rating"`

	// DuplicateOf is the index of the first identical record, for duplicates.
	DuplicateOf *int `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`
}

// QualityReport summarises data-quality concerns found after load.
type QualityReport struct {
	OutOfRange      []QualityIssue `json:"out_of_range" yaml:"out_of_range"`
	Duplicates      []QualityIssue `json:"duplicates" yaml:"duplicates"`
	UnknownLocation int            `json:"unknown_location" yaml:"unknown_location"`
	UnknownDate     int            `json:"unknown_date" yaml:"unknown_date"`
}

// CheckQuality applies rules to every record of ds. It never removes anything.
func CheckQuality(ds *Dataset, rules QualityRules) QualityReport {
	report := QualityReport{
		OutOfRange: []QualityIssue{},
		Duplicates: []QualityIssue{},
	}
	firstSeen := make(map[model.Record]int, ds.Len())

	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		issue := QualityIssue{Index: i, ID: rec.ID, Park: rec.Park, Rating: rec.Rating}

		if rec.Rating < rules.MinRating || rec.Rating > rules.MaxRating {
			report.OutOfRange = append(report.OutOfRange, issue)
		}
		if first, dup := firstSeen[rec]; dup {
			issue.DuplicateOf = &first
			report.Duplicates = append(report.Duplicates, issue)
		} else {
			firstSeen[rec] = i
		}
		if !rec.HasLocation() {
			report.UnknownLocation++
		}
		if !rec.Date.HasYear() {
			report.UnknownDate++
		}
	}
	return report
}
