package analyzer

import (
	"context"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/failsight/internal/loader"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/logze/v2"
)

// Analyzer runs the whole flow of one analysis: load inputs, assemble and send
// the prompt, persist the model response together with the raw inputs.
type Analyzer struct {
	loader *loader.Loader
	agent  interfaces.FailureAnalyzer
	store  interfaces.ResultStore

	cfg Config
	log logze.Logger
}

// New creates a new analyzer
func New(cfg Config, agent interfaces.FailureAnalyzer, store interfaces.ResultStore) (*Analyzer, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	return &Analyzer{
		loader: loader.New(),
		agent:  agent,
		store:  store,
		cfg:    cfg,
		log:    logze.With("component", "analyzer"),
	}, nil
}

// Run executes one analysis end to end. The commits file is required; a missing
// reports folder degrades to zero reports. Nothing is written when the model
// call fails, so the previous result stays valid.
func (a *Analyzer) Run(ctx context.Context) (model.AnalysisResult, error) {
	timer := abstract.StartTimer()

	commits, err := a.loader.LoadCommits(a.cfg.CommitsFile, a.cfg.MaxCommits)
	if err != nil {
		return model.AnalysisResult{}, erro.Wrap(err, "load commits")
	}

	reports, err := a.loader.LoadReports(a.cfg.ReportsDir)
	if err != nil {
		return model.AnalysisResult{}, erro.Wrap(err, "load reports")
	}
	if len(reports) == 0 {
		a.log.Warn("no test reports found, analysis covers commit history only", "dir", a.cfg.ReportsDir)
	}

	analysis, err := a.agent.AnalyzeFailures(ctx, commits, reports)
	if err != nil {
		return model.AnalysisResult{}, erro.Wrap(err, "analyze failures")
	}

	result := model.AnalysisResult{
		Timestamp:       time.Now(),
		CommitsAnalyzed: len(commits),
		ReportsAnalyzed: len(reports),
		LLMAnalysis:     analysis,
		RawData: model.RawData{
			Commits:     commits,
			TestReports: reports,
		},
	}

	if err := a.store.SaveAnalysis(result); err != nil {
		return model.AnalysisResult{}, erro.Wrap(err, "save analysis")
	}

	a.log.Info("analysis complete",
		"commits", result.CommitsAnalyzed,
		"reports", result.ReportsAnalyzed,
		"analysis_size", len(result.LLMAnalysis),
		"elapsed_time", timer.ElapsedTime().String(),
	)

	return result, nil
}
