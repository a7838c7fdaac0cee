package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/failsight/internal/analyzer"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
	"github.com/panjf2000/ants/v2"
)

const defaultPoolSize = 4

const (
	jobStatusRunning = "running"
	jobStatusDone    = "done"
	jobStatusFailed  = "failed"
)

// jobInfo tracks one analysis run submitted through the web UI
type jobInfo struct {
	ID         string                `json:"id"`
	Status     string                `json:"status"`
	Error      string                `json:"error,omitempty"`
	Result     *model.AnalysisResult `json:"result,omitempty"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}

// Server exposes the analyze flow behind a small web page
type Server struct {
	analyzer *analyzer.Analyzer
	store    interfaces.ResultStore
	pool     *ants.Pool
	jobs     *abstract.SafeMap[string, jobInfo]

	config Config
	log    logze.Logger
	server *servex.Server
}

// New creates a new web UI server
func New(cfg Config, analyzer *analyzer.Analyzer, store interfaces.ResultStore) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("component", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cfg.Certificate),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create ants pool")
	}

	h := &Server{
		analyzer: analyzer,
		store:    store,
		pool:     pool,
		jobs:     abstract.NewSafeMap[string, jobInfo](),
		config:   cfg,
		log:      log,
		server:   server,
	}

	server.HandleFunc("/", h.handleIndex)
	server.HandleFunc("/api/analyze", h.handleAnalyze)
	server.HandleFunc("/api/jobs/{id}", h.handleJobStatus)
	server.HandleFunc("/api/result", h.handleResult)

	return h, nil
}

// Start starts the web UI server
func (h *Server) Start(ctx context.Context) error {
	if h.config.EnableHTTPS {
		return h.server.StartHTTPS(h.config.Address)
	}
	return h.server.StartHTTP(h.config.Address)
}

// Stop stops the web UI server
func (h *Server) Stop(ctx context.Context) error {
	h.pool.Release()
	return h.server.Shutdown(ctx)
}

// handleIndex serves the analysis form page
func (h *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

// handleAnalyze submits one analysis run to the worker pool
func (h *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	job := jobInfo{
		ID:        uuid.NewString(),
		Status:    jobStatusRunning,
		StartedAt: time.Now(),
	}
	h.jobs.Set(job.ID, job)

	err := h.pool.Submit(func() {
		// Detached from the request context: the run outlives the HTTP exchange
		result, err := h.analyzer.Run(context.Background())

		job := h.jobs.Get(job.ID)
		job.FinishedAt = time.Now()
		if err != nil {
			h.log.Error("analysis job failed", "job_id", job.ID, "error", err)
			job.Status = jobStatusFailed
			job.Error = err.Error()
		} else {
			job.Status = jobStatusDone
			job.Result = &result
		}
		h.jobs.Set(job.ID, job)
	})
	if err != nil {
		ctx.InternalServerError(err, "failed to submit analysis job")
		return
	}

	h.log.Info("analysis job submitted", "job_id", job.ID)

	ctx.Response(http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// handleJobStatus returns the state of one submitted job
func (h *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	id := ctx.Path("id")
	job := h.jobs.Get(id)
	if job.ID == "" {
		ctx.Response(http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	ctx.Response(http.StatusOK, job)
}

// handleResult returns the last persisted analysis result
func (h *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	result, err := h.store.LoadAnalysis()
	if err != nil {
		if errors.Is(err, model.ErrInputNotFound) {
			ctx.Response(http.StatusNotFound, map[string]string{"error": "no analysis result yet"})
			return
		}
		ctx.InternalServerError(err, "failed to load analysis result")
		return
	}

	ctx.Response(http.StatusOK, result)
}
