package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handlers groups the HTTP handlers mounted under /api/v1.
type Handlers struct {
	Auth       *AuthHandler
	Documents  *DocumentHandler
	Analyses   *AnalysisHandler
	Chat       *ChatHandler
	Dictionary *DictionaryHandler
	Feedback   *FeedbackHandler
	Specialist *SpecialistHandler
}

// RouterOptions carries the cross-cutting pieces of the router.
type RouterOptions struct {
	AllowedOrigins []string
	// Metrics wraps every matched route; MetricsHandler serves /metrics.
	Metrics        func(http.Handler) http.Handler
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(h Handlers, ownerMiddleware func(http.Handler) http.Handler, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	if opts.Metrics != nil {
		router.Use(opts.Metrics)
	}

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "lexiguide"})
	}).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		router.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(ownerMiddleware)

	api.HandleFunc("/session", h.Auth.GetSession).Methods(http.MethodGet)

	api.HandleFunc("/documents", h.Documents.GetDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents", h.Documents.UploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}", h.Documents.GetDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", h.Documents.DeleteDocument).Methods(http.MethodDelete)

	api.HandleFunc("/documents/{id}/analysis", h.Analyses.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}/analysis", h.Analyses.ListForDocument).Methods(http.MethodGet)
	api.HandleFunc("/analyses", h.Analyses.History).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}", h.Analyses.GetAnalysis).Methods(http.MethodGet)

	api.HandleFunc("/documents/{id}/questions", h.Chat.Ask).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}/chat", h.Chat.History).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/chat", h.Chat.Clear).Methods(http.MethodDelete)

	api.HandleFunc("/dictionary/{term}", h.Dictionary.Lookup).Methods(http.MethodGet)

	api.HandleFunc("/feedback", h.Feedback.Submit).Methods(http.MethodPost)
	api.HandleFunc("/feedback", h.Feedback.List).Methods(http.MethodGet)

	api.HandleFunc("/specialists", h.Specialist.Recommend).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
