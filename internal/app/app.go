package app

import (
	"context"
	"fmt"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/agent"
	"github.com/maxbolgarin/failsight/internal/analyzer"
	"github.com/maxbolgarin/failsight/internal/config"
	"github.com/maxbolgarin/failsight/internal/extractor"
	"github.com/maxbolgarin/failsight/internal/server"
	"github.com/maxbolgarin/failsight/internal/storage"
	"github.com/maxbolgarin/logze/v2"
)

// App is the main service that wires components per run mode
type App struct {
	cfg config.Config
	log logze.Logger
}

// New creates the application. Components are built inside each run mode, so
// the extractor does not demand model credentials and the analyzer does not
// demand a VCS token.
func New(ctx contem.Context, cfg config.Config) (*App, error) {
	return &App{
		cfg: cfg,
		log: logze.With("component", "app"),
	}, nil
}

// RunAnalysis performs one load-assemble-call-save flow and prints the
// model's analysis
func (a *App) RunAnalysis(ctx context.Context) error {
	anl, _, err := a.newAnalyzer(ctx)
	if err != nil {
		return err
	}

	result, err := anl.Run(ctx)
	if err != nil {
		return errm.Wrap(err, "failed to run analysis")
	}

	fmt.Println(result.LLMAnalysis)

	return nil
}

// RunExtract performs one batch export of the configured repository
func (a *App) RunExtract(ctx context.Context) error {
	ext, err := extractor.New(a.cfg.Extractor)
	if err != nil {
		return errm.Wrap(err, "failed to create extractor")
	}

	outDir, err := ext.Run(ctx)
	if err != nil {
		return errm.Wrap(err, "failed to run extraction")
	}

	a.log.Info("extraction output written", "dir", outDir)

	return nil
}

// StartServer starts the web UI server and blocks until shutdown
func (a *App) StartServer(ctx contem.Context) error {
	anl, store, err := a.newAnalyzer(ctx)
	if err != nil {
		return err
	}

	srv, err := server.New(a.cfg.Server, anl, store)
	if err != nil {
		return errm.Wrap(err, "failed to create server")
	}
	ctx.Add(srv.Stop)

	if err := srv.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start server")
	}

	a.log.Info("server started", "address", a.cfg.Server.Address)

	<-ctx.Done()

	return nil
}

// newAnalyzer builds the agent, store and analyzer used by the analyze flow.
// Config validation happens here, before any data file is touched.
func (a *App) newAnalyzer(ctx context.Context) (*analyzer.Analyzer, *storage.Store, error) {
	aiAgent, err := agent.New(ctx, a.cfg.Agent)
	if err != nil {
		return nil, nil, errm.Wrap(err, "failed to create AI agent")
	}

	analysisCfg := a.cfg.Analysis
	if err := analysisCfg.PrepareAndValidate(); err != nil {
		return nil, nil, errm.Wrap(err, "failed to validate analysis config")
	}

	store := storage.New(analysisCfg.OutputFile)

	anl, err := analyzer.New(analysisCfg, aiAgent, store)
	if err != nil {
		return nil, nil, errm.Wrap(err, "failed to create analyzer")
	}

	return anl, store, nil
}
