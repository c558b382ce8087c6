package server

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 7807 problem details body. Instance carries the request
// path that failed.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// RespondJSON marshals data before writing any header, so a payload that
// fails to encode still gets a clean 500
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		writeProblem(w, Problem{Status: http.StatusInternalServerError, Detail: "failed to encode response"})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// RespondError writes a problem response for the request r
func RespondError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, Problem{Status: status, Detail: detail, Instance: r.URL.Path})
}

func writeProblem(w http.ResponseWriter, p Problem) {
	p.Type = "about:blank"
	p.Title = http.StatusText(p.Status)

	// Problem holds only strings and an int
	payload, _ := json.Marshal(p)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_, _ = w.Write(payload)
}
