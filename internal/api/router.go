package api

import (
	"go-review-analytics/internal/api/handler"
	"go-review-analytics/pkg/router"

	_ "go-review-analytics/internal/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func RegisterRoutes(r *router.Router, h *handler.ReviewHandler) {
	r.GET("/api/v1/session", h.GetSession)
	r.GET("/api/v1/session/quality", h.GetQuality)
	r.GET("/api/v1/metrics", h.GetMetrics)
	r.GET("/api/v1/parks", h.ListParks)
	// More specific routes first
	r.GET("/api/v1/parks/*/reviews", h.GetParkReviews)
	r.GET("/api/v1/parks/*/count", h.CountParkLocation)
	r.GET("/api/v1/parks/*/average", h.GetParkAverage)
	r.GET("/api/v1/parks/*/top-locations", h.GetTopLocations)
	r.GET("/api/v1/parks/*/monthly", h.GetMonthlyAverages)
	r.GET("/api/v1/park-locations", h.GetParkLocations)
	r.GET("/api/v1/top", h.GetTop)
	r.GET("/api/v1/summary", h.GetSummary)
	r.GET("/api/v1/export", h.DownloadExport)
	r.POST("/api/v1/exports", h.CreateExport)
	r.GET("/api/v1/exports", h.ListExports)
	r.GET("/api/v1/exports/*", h.GetExport)

	r.Mount("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
