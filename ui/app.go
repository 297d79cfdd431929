package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datalens/adapters/loader"
	"datalens/domain/chart"
	"datalens/domain/reasoning"
	"datalens/domain/table"
	"datalens/internal/aggregate"
	"datalens/internal/profiling"
)

// App is the local explorer: it serves a single data file without a database,
// for poking at the reasoning and chart engines from the command line.
type App struct {
	router   *chi.Mux
	table    *table.Table
	profile  *profiling.DatasetProfile
	filePath string
}

// AppConfig holds explorer configuration
type AppConfig struct {
	FilePath string
	MaxRows  int
}

// NewApp loads the data file and wires the explorer routes
func NewApp(config AppConfig) (*App, error) {
	reader := loader.NewDataReader(profiling.DefaultConfig())
	t, err := reader.Load(config.FilePath, config.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.FilePath, err)
	}

	profiler := profiling.NewProfiler(profiling.DefaultConfig())
	profile, err := profiler.Profile(context.Background(), t)
	if err != nil {
		return nil, fmt.Errorf("failed to profile %s: %w", config.FilePath, err)
	}
	log.Printf("[Explorer] loaded %s (%d rows, %d columns)", config.FilePath, t.Len(), len(t.Schema().Columns))

	app := &App{
		router:   chi.NewRouter(),
		table:    t,
		profile:  profile,
		filePath: config.FilePath,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app, nil
}

// Router exposes the handler for http.ListenAndServe and tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)
	a.router.Get("/api/schema", a.handleSchema)
	a.router.Get("/api/profile", a.handleProfile)
	a.router.Post("/api/query", a.handleQuery)
	a.router.Post("/api/chart", a.handleChart)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"file":   a.filePath,
		"rows":   a.table.Len(),
	})
}

func (a *App) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema := a.table.Schema()
	columns := make([]map[string]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		columns = append(columns, map[string]string{
			"name": col.Name,
			"kind": string(col.Kind),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"columns": columns})
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.profile)
}

type explorerQueryRequest struct {
	Query string `json:"query"`
}

func (a *App) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req explorerQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must contain a query field"})
		return
	}
	writeJSON(w, http.StatusOK, reasoning.Route(req.Query, a.table.Rows()))
}

type explorerChartRequest struct {
	Query string `json:"query"`
	Bins  int    `json:"bins"`
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	var req explorerChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must contain a query field"})
		return
	}

	spec := chart.SelectSpec(a.table.Schema(), req.Query)
	if req.Bins > 0 {
		spec.Options.Bins = req.Bins
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spec": spec,
		"data": aggregate.Run(a.table, spec),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Explorer] failed to encode response: %v", err)
	}
}
