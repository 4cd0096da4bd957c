package handlers

import (
	"net/http"
)

// NewRouter registers the API routes. Global middleware is applied by the caller.
func NewRouter(submissionHandler *SubmissionHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/submit", submissionHandler.HandleSubmit)
	mux.HandleFunc("GET /healthz", HandleHealth)
	mux.HandleFunc("/", HandleRoot)
	return mux
}
