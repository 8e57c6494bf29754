package router

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router dispatches on METHOD:PATH. A "*" segment matches exactly one path
// segment; a trailing "*" matches the rest of the path.
type Router struct {
	mux      *http.ServeMux
	routes   map[string]HandlerFunc // key = METHOD:PATH
	patterns []string               // wildcard patterns, most specific first
	paths    map[string]bool
	mounts   map[string]http.Handler // prefix mounts, e.g. /swagger/
	Quiet    bool                    // disables request logging
}

func New() *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
		mounts: make(map[string]http.Handler),
	}
	r.mux.HandleFunc("/", r.dispatch)
	return r
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	r.serve(lrw, req)

	if r.Quiet {
		return
	}
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, time.Since(start), colorReset,
	)
}

func (r *Router) serve(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	if h, ok := r.routes[req.Method+":"+path]; ok {
		h(w, req)
		return
	}

	pathMatched := r.paths[path]
	for _, pattern := range r.patterns {
		if !matchWildcardRoute(path, pattern) {
			continue
		}
		if h, ok := r.routes[req.Method+":"+pattern]; ok {
			h(w, req)
			return
		}
		pathMatched = true
	}

	for prefix, h := range r.mounts {
		if strings.HasPrefix(path, prefix) {
			h.ServeHTTP(w, req)
			return
		}
	}

	if pathMatched {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

// matchWildcardRoute checks if a request path matches a wildcard route pattern
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	last := len(routeSegments) - 1
	if routeSegments[last] == "*" && len(requestSegments) > len(routeSegments) {
		// trailing wildcard swallows the remaining segments
		requestSegments = append(requestSegments[:last], strings.Join(requestSegments[last:], "/"))
	}
	if len(requestSegments) != len(routeSegments) {
		return false
	}

	for i, routeSegment := range routeSegments {
		if routeSegment == "*" {
			if requestSegments[i] == "" {
				return false
			}
			continue
		}
		if requestSegments[i] != routeSegment {
			return false
		}
	}
	return true
}

// Params returns the values matched by the "*" segments of pattern in the request
// path. URL.Path is already decoded by net/http. It returns nil when the path does not match.
func Params(req *http.Request, pattern string) []string {
	if !matchWildcardRoute(req.URL.Path, pattern) {
		return nil
	}
	requestSegments := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	routeSegments := strings.Split(strings.Trim(pattern, "/"), "/")

	var params []string
	for i, routeSegment := range routeSegments {
		if routeSegment != "*" {
			continue
		}
		value := requestSegments[i]
		if i == len(routeSegments)-1 {
			value = strings.Join(requestSegments[i:], "/")
		}
		params = append(params, value)
	}
	return params
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	r.paths[path] = true

	if strings.Contains(path, "*") && !containsString(r.patterns, path) {
		r.patterns = append(r.patterns, path)
		// literal segments first, so /parks/*/reviews beats /parks/*
		sort.SliceStable(r.patterns, func(i, j int) bool {
			return strings.Count(r.patterns[i], "/") > strings.Count(r.patterns[j], "/")
		})
	}
}

func (r *Router) GET(path string, handler HandlerFunc) { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }

// Mount serves every path under prefix with h.
func (r *Router) Mount(prefix string, h http.Handler) {
	r.mounts[prefix] = h
}

// Getter methods for testing
func (r *Router) Routes() map[string]HandlerFunc {
	return r.routes
}

func (r *Router) Paths() map[string]bool {
	return r.paths
}

// ServeHTTP makes the router usable with httptest and http.Server.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// --- Start server ---
func (r *Router) Start(addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	return srv.ListenAndServe()
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut, http.MethodPatch:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
