package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/bindays/internal/core/domain"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
	"github.com/custodia-labs/bindays/internal/logger"
	"github.com/custodia-labs/bindays/internal/metrics"
)

// Defaults for the run endpoint.
const (
	DefaultRunTimeout = 5 * time.Minute
	DefaultRunRate    = rate.Limit(1.0 / 10)
	DefaultRunBurst   = 3

	historyLimit = 20
)

// RouterConfig wires the router to core.
type RouterConfig struct {
	// Invoker handles /run. Required.
	Invoker driving.Invoker
	// Store backs /tasks. Optional: without it /tasks returns an empty list.
	Store driven.SchedulerStore
	// RunTimeout bounds a single run. Runs are not cancelled when the
	// client disconnects.
	RunTimeout time.Duration
	// RunRate and RunBurst limit /run per client IP.
	RunRate  rate.Limit
	RunBurst int
}

func (c RouterConfig) withDefaults() RouterConfig {
	if c.RunTimeout <= 0 {
		c.RunTimeout = DefaultRunTimeout
	}
	if c.RunRate <= 0 {
		c.RunRate = DefaultRunRate
	}
	if c.RunBurst <= 0 {
		c.RunBurst = DefaultRunBurst
	}
	return c
}

// NewRouter wires all HTTP routes.
func NewRouter(cfg RouterConfig) http.Handler {
	cfg = cfg.withDefaults()
	h := &handlers{config: cfg}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.Handler().ServeHTTP(w, r)
	})

	r.Get("/tasks", h.tasks)

	limiter := NewIPRateLimiter(cfg.RunRate, cfg.RunBurst)
	r.With(limiter.Middleware()).Get("/run", h.run)

	return r
}

type handlers struct {
	config RouterConfig
}

func (h *handlers) run(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.config.RunTimeout)
	defer cancel()

	resp := h.config.Invoker.Invoke(ctx, domain.Invocation{
		QueryParameters: params,
		Source:          "http",
	})
	writeJSON(w, resp.StatusCode, resp.Body)
}

// taskView is the JSON form of a scheduled task and its history.
type taskView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Enabled     bool         `json:"enabled"`
	Interval    string       `json:"interval"`
	LastRun     *time.Time   `json:"lastRun,omitempty"`
	NextRun     *time.Time   `json:"nextRun,omitempty"`
	LastSuccess *time.Time   `json:"lastSuccess,omitempty"`
	LastError   string       `json:"lastError,omitempty"`
	History     []resultView `json:"history"`
}

type resultView struct {
	StartedAt      time.Time `json:"startedAt"`
	EndedAt        time.Time `json:"endedAt"`
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty"`
	ItemsProcessed int       `json:"itemsProcessed"`
}

func (h *handlers) tasks(w http.ResponseWriter, r *http.Request) {
	views := []taskView{}
	if h.config.Store == nil {
		writeJSON(w, http.StatusOK, views)
		return
	}

	tasks, err := h.config.Store.ListTasks(r.Context())
	if err != nil {
		logger.Error("List tasks: %v", err)
		writeJSON(w, http.StatusInternalServerError, domain.MessageBody{Msg: "failed to list tasks"})
		return
	}

	for _, task := range tasks {
		history, err := h.config.Store.GetTaskHistory(r.Context(), task.ID, historyLimit)
		if err != nil {
			logger.Warn("Task history for %s: %v", task.ID, err)
		}
		views = append(views, newTaskView(task, history))
	}
	writeJSON(w, http.StatusOK, views)
}

func newTaskView(task domain.ScheduledTask, history []domain.TaskResult) taskView {
	v := taskView{
		ID:          task.ID,
		Name:        task.Name,
		Enabled:     task.Enabled,
		Interval:    task.Interval.String(),
		LastRun:     optionalTime(task.LastRun),
		NextRun:     optionalTime(task.NextRun),
		LastSuccess: optionalTime(task.LastSuccess),
		LastError:   task.LastError,
		History:     make([]resultView, 0, len(history)),
	}
	for _, res := range history {
		v.History = append(v.History, resultView{
			StartedAt:      res.StartedAt,
			EndedAt:        res.EndedAt,
			Success:        res.Success,
			Error:          res.Error,
			ItemsProcessed: res.ItemsProcessed,
		})
	}
	return v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Write response: %v", err)
	}
}
