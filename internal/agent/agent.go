package agent

import (
	"context"
	"fmt"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/agent/claude"
	"github.com/maxbolgarin/failsight/internal/agent/gemini"
	"github.com/maxbolgarin/failsight/internal/agent/openai"
	"github.com/maxbolgarin/failsight/internal/agent/prompts"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/logze/v2"
)

// Agent sends assembled analysis prompts to the configured LLM API
type Agent struct {
	cfg    Config
	logger logze.Logger
	pb     *prompts.Builder
	api    interfaces.AgentAPI
}

// New creates a new AI agent of the configured type
func New(ctx context.Context, cfg Config) (*Agent, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	cli, err := cliex.NewWithConfig(cliex.Config{
		UserAgent:      cfg.UserAgent,
		ProxyAddress:   cfg.ProxyURL,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}

	agent := &Agent{
		cfg:    cfg,
		logger: logze.With("component", "agent"),
		pb:     prompts.NewBuilder(),
	}

	modelCfg := model.ModelConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		URL:        cfg.BaseURL,
		APIVersion: cfg.APIVersion,
		Deployment: cfg.Deployment,
		ProxyURL:   cfg.ProxyURL,
		IsTest:     cfg.IsTest,
	}

	switch cfg.Type {
	case OpenAI:
		agent.api, err = openai.New(ctx, cli, modelCfg)
	case Claude:
		agent.api, err = claude.New(ctx, cli, modelCfg)
	case Gemini:
		agent.api, err = gemini.New(ctx, modelCfg)
	default:
		return nil, errm.Errorf("unsupported agent type: %s", cfg.Type)
	}
	if err != nil {
		return nil, errm.Wrap(err, "failed to create agent")
	}

	return agent, nil
}

// AnalyzeFailures sends commit history and raw test reports to the model in one
// synchronous request and returns its free-text analysis. The call is not
// retried: any transport or auth failure surfaces as an external service error.
func (a *Agent) AnalyzeFailures(ctx context.Context, commits []model.Commit, reports []model.Report) (string, error) {
	prompt := a.pb.BuildAnalysisPrompt(commits, reports)

	a.logger.Info("calling model API",
		"model", a.cfg.Model,
		"prompt_size", len(prompt.UserPrompt),
		"commits", len(commits),
		"reports", len(reports),
	)

	response, err := a.api.CallAPI(ctx, model.APIRequest{
		Prompt:       prompt.UserPrompt,
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  a.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrExternalService, err)
	}

	if response.Content == "" {
		return "", fmt.Errorf("%w: empty response from API", model.ErrExternalService)
	}

	a.logger.Info("model response received",
		"prompt_tokens", response.PromptTokens,
		"completion_tokens", response.CompletionTokens,
		"total_tokens", response.TotalTokens,
	)

	return response.Content, nil
}
