package pipeline

import (
	"go-review-analytics/internal/model"
	"sort"
	"strconv"
	"strings"
)

// Metric names a statistic groups can be ranked by.
type Metric string

const (
	MetricMean  Metric = "mean"
	MetricCount Metric = "count"
	MetricSum   Metric = "sum"
	MetricMin   Metric = "min"
	MetricMax   Metric = "max"
)

// ParseMetric accepts a metric name; "avg" and "average" are aliases of mean.
func ParseMetric(name string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(name))); m {
	case "avg", "average":
		return MetricMean, nil
	case MetricMean, MetricCount, MetricSum, MetricMin, MetricMax:
		return m, nil
	}
	return "", model.InvalidArgument("metric", name, "want mean, count, sum, min or max")
}

// Value reads the metric from s.
func (m Metric) Value(s model.Stats) (float64, bool) {
	switch m {
	case MetricMean:
		return s.Mean, true
	case MetricCount:
		return float64(s.Count), true
	case MetricSum:
		return s.Sum, true
	case MetricMin:
		return float64(s.Min), true
	case MetricMax:
		return float64(s.Max), true
	}
	return 0, false
}

// RankedGroup is one entry of an ordered view.
type RankedGroup struct {
	Rank  int            `json:"rank" yaml:"rank"`
	Key   model.GroupKey `json:"-" yaml:"-"`
	Group []string       `json:"group" yaml:"group"`

	model.Stats `yaml:",inline"`
}

// Rank orders every group of result descending by metric. Equal values are
// ordered by group key, ascending.
func Rank(result *AggregateResult, metric Metric) ([]RankedGroup, error) {
	if _, ok := metric.Value(model.Stats{}); !ok {
		return nil, model.InvalidArgument("metric", string(metric), "unrecognized metric")
	}

	ranked := make([]RankedGroup, 0, result.Len())
	for k, s := range result.groups {
		ranked = append(ranked, RankedGroup{Key: k, Group: k.Parts(), Stats: s})
	}

	sort.Slice(ranked, func(i, j int) bool {
		vi, _ := metric.Value(ranked[i].Stats)
		vj, _ := metric.Value(ranked[j].Stats)
		if vi != vj {
			return vi > vj
		}
		return model.CompareKeys(ranked[i].Key, ranked[j].Key) < 0
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// TopN returns the n highest ranked groups, fewer when the result is smaller.
func TopN(result *AggregateResult, metric Metric, n int) ([]RankedGroup, error) {
	if n <= 0 {
		return nil, model.InvalidArgument("n", strconv.Itoa(n), "must be positive")
	}
	ranked, err := Rank(result, metric)
	if err != nil {
		return nil, err
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
