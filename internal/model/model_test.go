package model

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		in   string
		want YearMonth
		str  string
	}{
		{"2019-4", YearMonth{2019, 4}, "2019-4"},
		{"2019-04", YearMonth{2019, 4}, "2019-4"},
		{" 2010-12 ", YearMonth{2010, 12}, "2010-12"},
		{"2018", YearMonth{Year: 2018}, "2018"},
		{"2018-13", YearMonth{Year: 2018}, "2018"},
		{"missing", YearMonth{}, Unknown},
		{"", YearMonth{}, Unknown},
		{"19-4", YearMonth{}, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseYearMonth(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestYearMonthKeys(t *testing.T) {
	ym := YearMonth{Year: 2019, Month: 3}
	assert.Equal(t, "2019", ym.YearKey())
	assert.Equal(t, "03", ym.MonthKey())

	var unknown YearMonth
	assert.Equal(t, Unknown, unknown.YearKey())
	assert.Equal(t, Unknown, unknown.MonthKey())
}

func TestRecordHelpers(t *testing.T) {
	assert.True(t, Record{Location: "Australia"}.HasLocation())
	assert.False(t, Record{Location: Unknown}.HasLocation())
	assert.False(t, Record{}.HasLocation())

	assert.True(t, Record{Rating: 1}.InRange())
	assert.True(t, Record{Rating: 5}.InRange())
	assert.False(t, Record{Rating: 0}.InRange())
	assert.False(t, Record{Rating: 6}.InRange())
}

func TestGroupKey(t *testing.T) {
	k := NewGroupKey("Disneyland_Paris", "France")
	assert.Equal(t, []string{"Disneyland_Paris", "France"}, k.Parts())
	assert.Equal(t, "Disneyland_Paris / France", k.String())
	assert.Equal(t, []string{"A"}, NewGroupKey("A").Parts())
}

func TestCompareKeys(t *testing.T) {
	tests := []struct {
		a, b GroupKey
		want int
	}{
		{NewGroupKey("A"), NewGroupKey("B"), -1},
		{NewGroupKey("B"), NewGroupKey("A"), 1},
		{NewGroupKey("A", "x"), NewGroupKey("A", "x"), 0},
		{NewGroupKey("A", "b"), NewGroupKey("A", "c"), -1},
		// part-wise: "A" < "A b" must not depend on the separator byte
		{NewGroupKey("A", "z"), NewGroupKey("A b", "a"), -1},
		{NewGroupKey("A"), NewGroupKey("A", "x"), -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareKeys(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	notFound := fmt.Errorf("loading: %w", &SourceNotFoundError{Path: "x.csv", Err: os.ErrNotExist})
	assert.True(t, errors.Is(notFound, ErrSourceNotFound))
	assert.True(t, errors.Is(notFound, os.ErrNotExist))
	assert.False(t, errors.Is(notFound, ErrParse))

	var parse error = &ParseError{Row: 3, Column: "rating", Value: "five", Reason: "not an integer"}
	assert.True(t, errors.Is(parse, ErrParse))
	assert.Equal(t, `row 3: column rating: not an integer (got "five")`, parse.Error())
	assert.Equal(t, "row 1: empty", (&ParseError{Row: 1, Reason: "empty"}).Error())

	var pe *ParseError
	require.True(t, errors.As(fmt.Errorf("wrap: %w", parse), &pe))
	assert.Equal(t, 3, pe.Row)

	empty := &EmptyGroupError{Key: "Disneyland_Paris / 2018"}
	assert.True(t, errors.Is(empty, ErrEmptyGroup))
	assert.Contains(t, empty.Error(), "Disneyland_Paris / 2018")

	inv := InvalidArgument("n", "0", "must be positive")
	assert.True(t, errors.Is(inv, ErrInvalidArgument))
	assert.Equal(t, `invalid n "0": must be positive`, inv.Error())
}
