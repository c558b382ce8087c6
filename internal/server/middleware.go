package server

import (
	"net/http"
	"runtime/debug"
)

// recovery turns a handler panic into a 500 problem response and logs it
// with the id and format of the loaded document
func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			attrs := []any{
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
			}
			if doc, err := s.viewer.Document(); err == nil {
				attrs = append(attrs, "document", doc.ID, "format", doc.Format)
			}
			attrs = append(attrs, "stack", string(debug.Stack()))
			s.logger.Error("recovered from panic while serving bookmarks", attrs...)

			RespondError(w, r, http.StatusInternalServerError, "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
