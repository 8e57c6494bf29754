// Package session holds one loaded review dataset for the lifetime of a process,
// together with simple per-query metrics.
package session

import (
	"go-review-analytics/internal/model"
	"go-review-analytics/internal/pipeline"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// QueryMetrics tracks calls of one named query
type QueryMetrics struct {
	Name          string        `json:"name"`
	Calls         int64         `json:"calls"`
	Errors        int64         `json:"errors"`
	TotalDuration time.Duration `json:"total_duration"`
	LastDuration  time.Duration `json:"last_duration"`
	LastError     string        `json:"last_error,omitempty"`
	LastCalledAt  time.Time     `json:"last_called_at"`
}

// Info is the primitive description of a session
type Info struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	LoadedAt        time.Time `json:"loaded_at"`
	LoadDuration    string    `json:"load_duration"`
	Reviews         int       `json:"reviews"`
	Skipped         int       `json:"skipped"`
	OutOfRange      int       `json:"out_of_range"`
	Duplicates      int       `json:"duplicates"`
	UnknownLocation int       `json:"unknown_location"`
	UnknownDate     int       `json:"unknown_date"`
}

// Session owns a loaded dataset. The dataset is read-only, so queries may run
// concurrently; only the metrics are guarded.
type Session struct {
	ID           string
	Source       string
	LoadedAt     time.Time
	LoadDuration time.Duration
	Dataset      *pipeline.Dataset
	Warnings     []model.ParseError
	Skipped      int
	Quality      pipeline.QualityReport

	mutex   sync.RWMutex
	queries map[string]*QueryMetrics
}

// Open loads path and starts a session over it.
func Open(path string, cols pipeline.Columns) (*Session, error) {
	start := time.Now()
	res, err := pipeline.Load(path, cols)
	if err != nil {
		return nil, err
	}
	s := New(path, res)
	s.LoadDuration = time.Since(start)
	return s, nil
}

// New wraps an existing load result.
func New(source string, res *pipeline.LoadResult) *Session {
	return &Session{
		ID:       uuid.New().String(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Dataset:  res.Dataset,
		Warnings: res.Warnings,
		Skipped:  res.Skipped,
		Quality:  pipeline.CheckQuality(res.Dataset, pipeline.DefaultQualityRules()),
		queries:  make(map[string]*QueryMetrics),
	}
}

// Info describes the session.
func (s *Session) Info() Info {
	return Info{
		ID:              s.ID,
		Source:          s.Source,
		LoadedAt:        s.LoadedAt,
		LoadDuration:    s.LoadDuration.String(),
		Reviews:         s.Dataset.Len(),
		Skipped:         s.Skipped,
		OutOfRange:      len(s.Quality.OutOfRange),
		Duplicates:      len(s.Quality.Duplicates),
		UnknownLocation: s.Quality.UnknownLocation,
		UnknownDate:     s.Quality.UnknownDate,
	}
}

// Track runs fn and records its duration and outcome under name.
func (s *Session) Track(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	m, ok := s.queries[name]
	if !ok {
		m = &QueryMetrics{Name: name}
		s.queries[name] = m
	}
	m.Calls++
	m.TotalDuration += elapsed
	m.LastDuration = elapsed
	m.LastCalledAt = start.UTC()
	if err != nil {
		m.Errors++
		m.LastError = err.Error()
	}
	return err
}

// Metrics returns a snapshot of all query metrics, sorted by name.
func (s *Session) Metrics() []QueryMetrics {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]QueryMetrics, 0, len(s.queries))
	for _, m := range s.queries {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
