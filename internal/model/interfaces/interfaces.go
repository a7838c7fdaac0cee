package interfaces

import (
	"context"

	"github.com/maxbolgarin/failsight/internal/model"
)

// AgentAPI defines the interface for calling LLM AI models
type AgentAPI interface {
	CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error)
}

// FailureAnalyzer defines the part of the AI agent the analysis flow depends on
type FailureAnalyzer interface {
	AnalyzeFailures(ctx context.Context, commits []model.Commit, reports []model.Report) (string, error)
}

// SourceProvider defines the interface for VCS providers the extractor pulls from
type SourceProvider interface {
	// ListCommits returns up to limit commits of the repository, newest first,
	// with per-file stats and patch text attached.
	ListCommits(ctx context.Context, repo string, limit int) ([]model.Commit, error)

	// ListBranches returns all branches of the repository.
	ListBranches(ctx context.Context, repo string) ([]model.Branch, error)
}

// ResultStore defines the persistence contract for analysis results.
// Saving is atomic: a reader never observes a partially written result.
type ResultStore interface {
	SaveAnalysis(result model.AnalysisResult) error
	LoadAnalysis() (model.AnalysisResult, error)
}
