package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.LoggingMiddleware)
	r.HandleFunc("/health", h.HealthHandler).Methods("GET")
	r.HandleFunc("/", h.IndexHandler).Methods("GET")
	r.HandleFunc("/index.html", h.IndexHandler).Methods("GET")
	r.HandleFunc("/debug/notifier", h.NotifierHandler).Methods("GET")

	// Static assets; index.html goes through IndexHandler so every view is a page load.
	static := http.StripPrefix("/static/", http.FileServer(http.FS(h.assets)))
	r.PathPrefix("/static/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/static/index.html" || r.URL.Path == "/static/" {
			http.NotFound(w, r)
			return
		}
		static.ServeHTTP(w, r)
	}).Methods("GET")
	return r
}
