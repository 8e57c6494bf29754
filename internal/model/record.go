package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Unknown is the dimension value used for a location, year or month that the
// source row did not provide.
const Unknown = "Unknown"

// YearMonth is the partially known date of a review.
// A zero Year or Month means that part was missing or unparseable.
type YearMonth struct {
	Year  int `json:"year,omitempty" yaml:"year,omitempty"`
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
}

// HasYear reports whether the year was present in the source.
func (ym YearMonth) HasYear() bool { return ym.Year > 0 }

// HasMonth reports whether the month was present in the source.
func (ym YearMonth) HasMonth() bool { return ym.Month >= 1 && ym.Month <= 12 }

// YearKey returns the four digit year, or Unknown.
func (ym YearMonth) YearKey() string {
	if !ym.HasYear() {
		return Unknown
	}
	return fmt.Sprintf("%04d", ym.Year)
}

// MonthKey returns the two digit month, or Unknown.
func (ym YearMonth) MonthKey() string {
	if !ym.HasMonth() {
		return Unknown
	}
	return fmt.Sprintf("%02d", ym.Month)
}

// String renders the date the way the source stores it ("2019-4"), or Unknown.
func (ym YearMonth) String() string {
	switch {
	case ym.HasYear() && ym.HasMonth():
		return fmt.Sprintf("%d-%d", ym.Year, ym.Month)
	case ym.HasYear():
		return strconv.Itoa(ym.Year)
	default:
		return Unknown
	}
}

// ParseYearMonth parses "YYYY-M", "YYYY-MM" or "YYYY". Anything else, including the
// "missing" marker used by the review dataset, yields the parts it can recover.
func ParseYearMonth(s string) YearMonth {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearMonth{}
	}

	yearPart, monthPart, _ := strings.Cut(s, "-")

	var ym YearMonth
	if len(yearPart) == 4 {
		if y, err := strconv.Atoi(yearPart); err == nil && y > 0 {
			ym.Year = y
		}
	}
	if ym.Year == 0 {
		return YearMonth{}
	}
	if m, err := strconv.Atoi(strings.TrimSpace(monthPart)); err == nil && m >= 1 && m <= 12 {
		ym.Month = m
	}
	return ym
}

// Record is one parsed review. Records are values; the loader hands them out by copy.
// Location holds Unknown when the source left it blank.
type Record struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Rating   int       `json:"rating" yaml:"rating"`
	Park     string    `json:"park" yaml:"park"`
	Location string    `json:"location" yaml:"location"`
	Date     YearMonth `json:"date" yaml:"date"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
}

// HasLocation reports whether the source named the reviewer location.
func (r Record) HasLocation() bool {
	return r.Location != "" && r.Location != Unknown
}

// InRange reports whether the rating lies on the expected 1-5 scale.
func (r Record) InRange() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}

// Rating scale bounds. Values outside are kept and flagged by the quality report.
const (
	MinRating = 1
	MaxRating = 5
)
