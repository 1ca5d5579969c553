package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/inclusionhub/backend/internal/metrics"
	"github.com/inclusionhub/backend/pkg/api"
)

// RouterConfig collects the handlers NewRouter binds.
type RouterConfig struct {
	Base    *Handler
	Contact *ContactHandler
	Content *ContentHandler
	// Metrics enables request instrumentation and GET /metrics. Nil disables both.
	Metrics *metrics.Metrics
}

// NewRouter registers every route of api.Routes() plus health and metrics,
// and wraps the router in the middleware chain. A route without a bound
// handler is an error.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	if cfg.Base == nil || cfg.Contact == nil || cfg.Content == nil {
		return nil, fmt.Errorf("router: Base, Contact and Content are required")
	}

	bindings := map[string]http.HandlerFunc{
		api.ContactSubmit.Name: cfg.Contact.Submit,
		api.ProgramsList.Name:  cfg.Content.Programs,
		api.StoriesList.Name:   cfg.Content.Stories,
	}

	r := mux.NewRouter()
	for _, route := range api.Routes() {
		h, ok := bindings[route.Name]
		if !ok {
			return nil, fmt.Errorf("router: no handler bound for route %q", route.Name)
		}
		r.Handle(route.Path, h).Methods(route.Method).Name(route.Name)
	}
	r.HandleFunc("/api/health", cfg.Base.Health).Methods(http.MethodGet).Name("health")

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet).Name("metrics")
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	var h http.Handler = r
	h = RequestLogger(h)
	h = RequestID(h)
	h = SecurityHeaders(h)
	h = cfg.Base.CORS(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(h)
	return h, nil
}

// recoveryLogger sends recovered panics to slog.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("panic recovered", "panic", fmt.Sprint(v...))
}
