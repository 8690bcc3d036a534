package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"animedb.org/api/spec"
	"animedb.org/internal/auth"
	"animedb.org/internal/docstore"
	"animedb.org/internal/obs"
)

// ReadyProbe reports whether the backing store is reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer. All dependencies are injected at construction and
// read-only afterwards.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string
	auth       *auth.Service
	tokens     *auth.TokenService
	users      docstore.Collection
	animes     docstore.Collection
}

func New(rp ReadyProbe, version string, authSvc *auth.Service, tokens *auth.TokenService, docs docstore.Store) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		auth:       authSvc,
		tokens:     tokens,
		users:      docs.Collection("users"),
		animes:     docs.Collection("animes"),
	}

	admin := RequireRole(auth.RoleAdmin)

	// auth
	a.mux.HandleFunc("POST /signup", a.handleSignup)
	a.mux.HandleFunc("POST /login", a.handleLogin)

	// users: any authenticated caller
	a.mux.Handle("GET /users", a.withAuth(a.listDocuments(a.users)))
	a.mux.Handle("POST /users", a.withAuth(a.insertDocument(a.users)))
	a.mux.Handle("GET /users/{id}", a.withAuth(a.getDocument(a.users)))
	a.mux.Handle("PUT /users/{id}", a.withAuth(a.updateDocument(a.users)))
	a.mux.Handle("DELETE /users/{id}", a.withAuth(a.deleteDocument(a.users)))

	// animes: reads for any authenticated caller, writes for admins
	a.mux.Handle("GET /animes", a.withAuth(a.listDocuments(a.animes)))
	a.mux.Handle("POST /animes", a.withAuth(admin(a.insertDocument(a.animes))))
	a.mux.Handle("GET /animes/{id}", a.withAuth(a.getDocument(a.animes)))
	a.mux.Handle("PUT /animes/{id}", a.withAuth(admin(a.updateDocument(a.animes))))
	a.mux.Handle("DELETE /animes/{id}", a.withAuth(admin(a.deleteDocument(a.animes))))

	// health/ready/info
	a.mux.HandleFunc("GET /healthz", a.Healthz)
	a.mux.HandleFunc("GET /readyz", a.Ready)
	a.mux.HandleFunc("GET /v1/info", a.Info)

	// OpenAPI YAML
	a.mux.HandleFunc("GET /openapi.yaml", a.OpenAPISpec)

	// Prometheus metrics
	a.mux.Handle("GET /metrics", obs.Handler())

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, 1<<20)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "animedb-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "animedb-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

func (a *API) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}
