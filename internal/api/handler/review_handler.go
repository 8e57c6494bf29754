package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"go-review-analytics/internal/export"
	"go-review-analytics/internal/model"
	"go-review-analytics/internal/pipeline"
	"go-review-analytics/internal/session"
	"go-review-analytics/internal/store"
	"go-review-analytics/pkg/router"
	"go-review-analytics/pkg/utils"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ReviewHandler serves read-only queries over one loaded session.
type ReviewHandler struct {
	Session  *session.Session
	Exporter *export.Exporter
	Store    *store.Store // optional export history

	TopLocations int
}

// NewReviewHandler creates a handler; st may be nil.
func NewReviewHandler(s *session.Session, ex *export.Exporter, st *store.Store, topLocations int) *ReviewHandler {
	return &ReviewHandler{Session: s, Exporter: ex, Store: st, TopLocations: topLocations}
}

// GetSession describes the loaded dataset
// @Summary Session info
// @Tags session
// @Produce json
// @Success 200 {object} session.Info
// @Router /session [get]
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Info())
}

// GetQuality lists the flagged records of the loaded dataset
// @Summary Data quality report
// @Tags session
// @Produce json
// @Success 200 {object} pipeline.QualityReport
// @Router /session/quality [get]
func (h *ReviewHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Quality)
}

// GetMetrics returns per-query call metrics
// @Summary Query metrics
// @Tags session
// @Produce json
// @Success 200 {array} session.QueryMetrics
// @Router /metrics [get]
func (h *ReviewHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Metrics())
}

type parkCount struct {
	Park    string `json:"park"`
	Reviews int    `json:"reviews"`
}

// ListParks returns the review count of every park
// @Summary Reviews per park
// @Tags parks
// @Produce json
// @Success 200 {array} parkCount
// @Router /parks [get]
func (h *ReviewHandler) ListParks(w http.ResponseWriter, r *http.Request) {
	var parks []parkCount
	h.Session.Track("reviews_per_park", func() error {
		for park, n := range pipeline.ReviewsPerPark(h.Session.Dataset) {
			parks = append(parks, parkCount{Park: park, Reviews: n})
		}
		sort.Slice(parks, func(i, j int) bool { return parks[i].Park < parks[j].Park })
		return nil
	})
	if parks == nil {
		parks = []parkCount{}
	}
	writeJSON(w, http.StatusOK, parks)
}

// GetParkReviews lists the reviews of one park
// @Summary Reviews of a park
// @Tags parks
// @Produce json
// @Param park path string true "Park name (case-insensitive substring)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /parks/{park}/reviews [get]
func (h *ReviewHandler) GetParkReviews(w http.ResponseWriter, r *http.Request) {
	park := parkParam(r, "/api/v1/parks/*/reviews")
	limit, err := intParam(r, "limit", 50)
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	if limit <= 0 || offset < 0 {
		writeError(w, model.InvalidArgument("limit/offset", fmt.Sprintf("%d/%d", limit, offset), "limit must be positive, offset non-negative"))
		return
	}

	var reviews *pipeline.Dataset
	err = h.Session.Track("reviews_for_park", func() error {
		var qerr error
		reviews, qerr = pipeline.ReviewsForPark(h.Session.Dataset, park)
		return qerr
	})
	if err != nil {
		writeError(w, err)
		return
	}

	page := []model.Record{}
	for i := offset; i < reviews.Len() && i < offset+limit; i++ {
		page = append(page, reviews.At(i))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"park":    park,
		"total":   reviews.Len(),
		"offset":  offset,
		"limit":   limit,
		"reviews": page,
	})
}

// CountParkLocation counts a park's reviews from one reviewer location
// @Summary Reviews by park and location
// @Tags parks
// @Produce json
// @Param park path string true "Park name"
// @Param location query string true "Reviewer location"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /parks/{park}/count [get]
func (h *ReviewHandler) CountParkLocation(w http.ResponseWriter, r *http.Request) {
	park := parkParam(r, "/api/v1/parks/*/count")
	location := r.URL.Query().Get("location")

	var count int
	err := h.Session.Track("count_by_park_and_location", func() error {
		var qerr error
		count, qerr = pipeline.CountByParkAndLocation(h.Session.Dataset, park, location)
		return qerr
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"park": park, "location": location, "count": count})
}

// GetParkAverage returns a park's mean rating in one year
// @Summary Average rating by park and year
// @Tags parks
// @Produce json
// @Param park path string true "Park name"
// @Param year query string true "Year (YYYY)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "No reviews that year"
// @Router /parks/{park}/average [get]
func (h *ReviewHandler) GetParkAverage(w http.ResponseWriter, r *http.Request) {
	park := parkParam(r, "/api/v1/parks/*/average")
	year := r.URL.Query().Get("year")

	var mean float64
	err := h.Session.Track("average_rating_by_year", func() error {
		var qerr error
		mean, qerr = pipeline.AverageRatingByYear(h.Session.Dataset, park, year)
		return qerr
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"park": park, "year": year, "average": mean})
}

// GetTopLocations ranks a park's reviewer locations by mean rating
// @Summary Top locations by rating
// @Tags parks
// @Produce json
// @Param park path string true "Park name"
// @Param n query int false "Number of locations"
// @Success 200 {array} pipeline.RankedGroup
// @Failure 400 {object} map[string]interface{}
// @Router /parks/{park}/top-locations [get]
func (h *ReviewHandler) GetTopLocations(w http.ResponseWriter, r *http.Request) {
	park := parkParam(r, "/api/v1/parks/*/top-locations")
	n, err := intParam(r, "n", h.TopLocations)
	if err != nil {
		writeError(w, err)
		return
	}

	var top []pipeline.RankedGroup
	err = h.Session.Track("top_locations_by_rating", func() error {
		var qerr error
		top, qerr = pipeline.TopLocationsByRating(h.Session.Dataset, park, n)
		return qerr
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// GetMonthlyAverages returns the park's mean rating per calendar month
// @Summary Monthly averages
// @Tags parks
// @Produce json
// @Param park path string true "Park name"
// @Success 200 {array} model.MonthlyAverage
// @Router /parks/{park}/monthly [get]
func (h *ReviewHandler) GetMonthlyAverages(w http.ResponseWriter, r *http.Request) {
	park := parkParam(r, "/api/v1/parks/*/monthly")

	var months []model.MonthlyAverage
	err := h.Session.Track("monthly_averages", func() error {
		var qerr error
		months, qerr = pipeline.MonthlyAverages(h.Session.Dataset, park)
		return qerr
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// GetParkLocations returns every park's mean rating per reviewer location
// @Summary Park x location averages
// @Tags parks
// @Produce json
// @Success 200 {array} model.ParkLocations
// @Router /park-locations [get]
func (h *ReviewHandler) GetParkLocations(w http.ResponseWriter, r *http.Request) {
	var out []model.ParkLocations
	h.Session.Track("park_location_averages", func() error {
		out = pipeline.ParkLocationAverages(h.Session.Dataset)
		return nil
	})
	writeJSON(w, http.StatusOK, out)
}

// GetTop ranks groups over arbitrary dimensions
// @Summary Top groups
// @Tags ranking
// @Produce json
// @Param by query string false "Comma separated dimensions" default(park)
// @Param metric query string false "mean, count, sum, min or max" default(mean)
// @Param n query int false "Number of groups" default(10)
// @Param year query string false "Restrict to a year"
// @Param park query string false "Restrict to a park"
// @Success 200 {array} pipeline.RankedGroup
// @Failure 400 {object} map[string]interface{}
// @Router /top [get]
func (h *ReviewHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	by := q.Get("by")
	if by == "" {
		by = "park"
	}
	dims, err := pipeline.ParseDimensions(by)
	if err != nil {
		writeError(w, err)
		return
	}
	metricName := q.Get("metric")
	if metricName == "" {
		metricName = "mean"
	}
	metric, err := pipeline.ParseMetric(metricName)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := intParam(r, "n", 10)
	if err != nil {
		writeError(w, err)
		return
	}

	query := pipeline.Query{Dimensions: dims, Metric: metric, N: n, Park: q.Get("park"), Year: q.Get("year")}
	var top []pipeline.RankedGroup
	err = h.Session.Track("top_groups", func() error {
		var qerr error
		top, qerr = pipeline.TopGroups(h.Session.Dataset, query)
		return qerr
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// GetSummary returns the per-park export summary
// @Summary Park summary
// @Tags export
// @Produce json
// @Success 200 {object} model.Summary
// @Router /summary [get]
func (h *ReviewHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var summary model.Summary
	h.Session.Track("summary", func() error {
		summary = pipeline.Summary(h.Session.Dataset)
		return nil
	})
	writeJSON(w, http.StatusOK, summary)
}

var contentTypes = map[string]string{
	"text": "text/plain; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"json": "application/json",
}

// DownloadExport streams the summary in the requested format without writing a file
// @Summary Download summary
// @Tags export
// @Param format query string true "txt, csv or json"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Router /export [get]
func (h *ReviewHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}

	env := export.Envelope{RunID: h.Session.ID, ExportedAt: time.Now().UTC(), Summary: pipeline.Summary(h.Session.Dataset)}
	fileName := h.Exporter.BaseName + format.Extension()

	var buf strings.Builder
	if err := export.Serialize(&buf, env, format); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[h.Exporter.Output.GetFileType(fileName)])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, buf.String())
}

// CreateExport writes the summary into the export directory
// @Summary Export summary to file
// @Tags export
// @Produce json
// @Param format query string true "txt, csv or json"
// @Success 201 {object} model.ExportResult
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} model.ExportResult
// @Router /exports [post]
func (h *ReviewHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}

	result := h.Exporter.Export(pipeline.Summary(h.Session.Dataset), format)
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}

	if size, err := h.Exporter.Output.GetFileSize(result.Path); err == nil {
		w.Header().Set("X-Export-Size", fmt.Sprint(size))
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListExports returns the export history
// @Summary Export history
// @Tags export
// @Produce json
// @Success 200 {array} model.ExportResult
// @Router /exports [get]
func (h *ReviewHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, []model.ExportResult{})
		return
	}
	runs, err := h.Store.ListExports()
	if err != nil {
		http.Error(w, "Failed to fetch exports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetExport returns the park summaries recorded by one export run
// @Summary Export run
// @Tags export
// @Produce json
// @Param id path string true "Export run ID"
// @Success 200 {array} model.ParkSummary
// @Failure 404 {object} map[string]interface{}
// @Router /exports/{id} [get]
func (h *ReviewHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	params := router.Params(r, "/api/v1/exports/*")
	if h.Store == nil || len(params) == 0 {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	parks, err := h.Store.GetSummary(params[0])
	if err != nil {
		http.Error(w, "Failed to fetch export", http.StatusInternalServerError)
		return
	}
	if len(parks) == 0 {
		http.Error(w, "Export not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"run_id": params[0], "parks": parks})
}

// ------------------- helpers -------------------

func parkParam(r *http.Request, pattern string) string {
	if params := router.Params(r, pattern); len(params) > 0 {
		return params[0]
	}
	return ""
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	n, err := utils.ParseInt(raw, def)
	if err != nil {
		return 0, model.InvalidArgument(name, raw, "not an integer")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the query error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrEmptyGroup):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]interface{}{"error": err.Error()})
}
