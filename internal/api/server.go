package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/wordjson/internal/config"
	"github.com/dgallion1/wordjson/internal/convert"
	"github.com/dgallion1/wordjson/internal/store"
	"github.com/dgallion1/wordjson/internal/upload"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server is the HTTP API for uploading documents and converting them to JSON.
type Server struct {
	router    chi.Router
	store     store.Store
	uploads   *upload.Dir
	converter *convert.Converter
	log       *slog.Logger
	cfg       config.Config
	newID     func() string
}

// NewServer creates and configures the HTTP server.
func NewServer(st store.Store, uploads *upload.Dir, conv *convert.Converter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:     st,
		uploads:   uploads,
		converter: conv,
		log:       log,
		cfg:       cfg,
		newID:     func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.Origins()))

	r.Get("/health", s.handleHealth)

	r.Post("/uploadFile", s.handleUpload)
	r.Get("/getFiles", s.handleListFiles)
	r.Delete("/deleteFile/{fileID}", s.handleDeleteFile)
	r.Get("/WordToJson/{fileID}", s.handleWordToJSON)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
