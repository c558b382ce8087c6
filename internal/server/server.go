// HTTP API consumed by the browser renderer

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
	"github.com/xtruder/json-bookmarks-viewer/internal/loader"
	"github.com/xtruder/json-bookmarks-viewer/internal/viewer"
)

const maxUploadSize = 32 << 20

// Viewer is the viewer state the API reads from and loads into
type Viewer interface {
	Load(ctx context.Context, location string) (*loader.Document, error)
	Upload(name string, r io.Reader) (*loader.Document, error)
	Document() (*loader.Document, error)
	Root() (*loader.Document, []bookmarks.Folder, error)
	Open(documentID string, path bookmarks.Path) (*loader.Document, bookmarks.FolderView, error)
	Search(query string) (bookmarks.SearchResult, error)
}

// Options contains configuration for the HTTP API
type Options struct {
	CORSOrigins []string
	// AllowFiles permits loading documents from the server's filesystem
	// through POST /api/document.
	AllowFiles bool
}

type Server struct {
	viewer Viewer
	opts   Options
	logger *slog.Logger
}

func New(v Viewer, opts Options, logger *slog.Logger) *Server {
	return &Server{
		viewer: v,
		opts:   opts,
		logger: logger,
	}
}

// Handler returns the API routes wrapped in recovery and CORS middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/document", s.handleGetDocument)
	mux.HandleFunc("POST /api/document", s.handleLoadDocument)
	mux.HandleFunc("PUT /api/document", s.handleUploadDocument)
	mux.HandleFunc("GET /api/root", s.handleRoot)
	mux.HandleFunc("GET /api/folder", s.handleFolder)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	var handler http.Handler = mux
	handler = s.recovery(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	return corsHandler.Handler(handler)
}

// ListenAndServe serves the API on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("failed to shut down server", "error", err)
		}
	}()

	s.logger.Info("bookmarks viewer listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type documentResponse struct {
	ID       string    `json:"id"`
	Location string    `json:"location"`
	Format   string    `json:"format"`
	LoadedAt time.Time `json:"loaded_at"`
}

func newDocumentResponse(doc *loader.Document) documentResponse {
	return documentResponse{
		ID:       doc.ID,
		Location: doc.Location,
		Format:   doc.Format.String(),
		LoadedAt: doc.LoadedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.viewer.Document()
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, newDocumentResponse(doc))
}

func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		RespondError(w, r, http.StatusBadRequest, "missing location")
		return
	}
	if !s.opts.AllowFiles && !loader.IsURL(location) {
		RespondError(w, r, http.StatusBadRequest, "only http(s) URLs can be loaded")
		return
	}

	doc, err := s.viewer.Load(r.Context(), location)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, newDocumentResponse(doc))
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		RespondError(w, r, http.StatusBadRequest, "missing query parameter 'name'")
		return
	}

	doc, err := s.viewer.Upload(name, http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, newDocumentResponse(doc))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	doc, folders, err := s.viewer.Root()
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, struct {
		Document string             `json:"document"`
		Folders  []bookmarks.Folder `json:"folders"`
	}{
		Document: doc.ID,
		Folders:  folders,
	})
}

func (s *Server) handleFolder(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	path, err := bookmarks.ParsePath(query.Get("path"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	doc, view, err := s.viewer.Open(query.Get("document"), path)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, struct {
		Document string `json:"document"`
		bookmarks.FolderView
	}{
		Document:   doc.ID,
		FolderView: view,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	// the query is matched as given, surrounding spaces included
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		RespondError(w, r, http.StatusBadRequest, "missing query parameter 'q'")
		return
	}

	result, err := s.viewer.Search(q)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, struct {
		Query string `json:"query"`
		bookmarks.SearchResult
	}{
		Query:        q,
		SearchResult: result,
	})
}

// respondErr maps viewer, loader and tree errors to status codes
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, viewer.ErrNoDocument), errors.Is(err, viewer.ErrStaleDocument):
		status = http.StatusConflict
	case errors.Is(err, bookmarks.ErrInvalidPath):
		status = http.StatusBadRequest
	case errors.Is(err, bookmarks.ErrUnknownFormat),
		errors.Is(err, bookmarks.ErrMalformedTree),
		errors.Is(err, loader.ErrUnsupportedFile),
		errors.Is(err, loader.ErrInvalidJSON):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &maxBytes):
		status = http.StatusRequestEntityTooLarge
	case r.Method != http.MethodGet:
		// remaining load failures come from the upstream document
		status = http.StatusBadGateway
	}

	s.logger.Warn("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err)
	RespondError(w, r, status, err.Error())
}
