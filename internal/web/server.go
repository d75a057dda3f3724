// Package web serves the comparison workbook over HTTP.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rally_timecomp/internal/feed"
	"rally_timecomp/internal/log"
)

//go:embed templates/index.html
var templates embed.FS

// SnapshotSource hands out the data to serve. feed.Store implements it.
type SnapshotSource interface {
	Current() *feed.Snapshot
}

type Server struct {
	src   SnapshotSource
	index *template.Template
}

func NewServer(src SnapshotSource) *Server {
	return &Server{
		src:   src,
		index: template.Must(template.ParseFS(templates, "templates/index.html")),
	}
}

// Router wires the routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/render", s.handleRender).Methods(http.MethodGet)
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Info("request",
			log.String("id", id),
			log.String("method", r.Method),
			log.String("uri", r.URL.RequestURI()),
			log.Int("status", rec.status),
			log.Int("size", rec.size),
			log.Duration("duration", time.Since(start)))
	})
}
