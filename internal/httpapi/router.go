package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"taskAssignment/internal/auth"
	"taskAssignment/internal/observability"
)

// Deps are the collaborators the REST surface is built from.
type Deps struct {
	Auth        AuthAPI
	Tasks       TaskAPI
	Tokens      auth.Verifier
	Health      *observability.HealthChecker
	Metrics     *observability.Metrics
	Log         logrus.FieldLogger
	CORSOrigins []string
}

// NewHandler builds the route table. The API is served at the root and again
// under /api, the paths the browser client uses.
func NewHandler(d Deps) http.Handler {
	h := &handlers{auth: d.Auth, tasks: d.Tasks, log: d.Log}

	logging := LoggingMiddleware(d.Log, d.Metrics)

	r := mux.NewRouter()
	// mux skips router middleware for unmatched requests, so these are wrapped directly.
	r.NotFoundHandler = logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteErrorMessage(w, http.StatusNotFound, "not found")
	}))
	r.MethodNotAllowedHandler = logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}))
	r.Use(logging)

	if d.Health != nil {
		r.HandleFunc("/healthz", d.Health.Liveness).Methods(http.MethodGet)
		r.HandleFunc("/readyz", d.Health.Readiness).Methods(http.MethodGet)
	}
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	gate := auth.Middleware(d.Tokens, h.fail)
	h.mount(r, gate)
	h.mount(r.PathPrefix("/api").Subrouter(), gate)

	var handler http.Handler = r
	handler = CORSMiddleware(d.CORSOrigins)(handler)
	handler = RecoveryMiddleware(d.Log)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}

func (h *handlers) mount(r *mux.Router, gate mux.MiddlewareFunc) {
	r.HandleFunc("/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(gate)
	protected.HandleFunc("/tasks", h.listTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks", h.createTask).Methods(http.MethodPost)
	protected.HandleFunc("/teachers", h.listTeachers).Methods(http.MethodGet)
}
