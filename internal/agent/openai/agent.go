package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/lang"
)

const (
	defaultModel = "gpt-4.1-mini"
	defaultURL   = "https://api.openai.com/v1"
)

var _ interfaces.AgentAPI = (*Agent)(nil)

// Agent implements the AgentAPI interface using the OpenAI chat completions API.
// It also speaks to Azure OpenAI deployments when an api-version is configured.
type Agent struct {
	cli        *cliex.HTTP
	cfg        model.ModelConfig
	requestURL string
}

// New creates a new OpenAI agent
func New(ctx context.Context, cli *cliex.HTTP, cfg model.ModelConfig) (*Agent, error) {
	if cfg.APIKey == "" {
		return nil, errm.New("OpenAI API key is required")
	}
	cfg.Model = lang.Check(cfg.Model, defaultModel)
	cfg.URL = lang.Check(cfg.URL, defaultURL)

	agent := &Agent{
		cli:        cli,
		cfg:        cfg,
		requestURL: buildRequestURL(cfg),
	}

	// Azure auth uses the api-key header instead of a bearer token
	if cfg.APIVersion != "" {
		cli.C().SetHeader("api-key", cfg.APIKey)
	} else {
		cli.C().SetAuthToken(cfg.APIKey)
	}

	// Test connection if needed (may take tokens)
	if cfg.IsTest {
		if err := agent.testConnection(ctx); err != nil {
			return nil, errm.Wrap(err, "failed to connect to OpenAI API")
		}
	}

	return agent, nil
}

// CallAPI makes a request to the OpenAI API
func (a *Agent) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	reqBody := chatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []message{
			{
				Role:    "system",
				Content: req.SystemPrompt,
			},
			{
				Role:    "user",
				Content: req.Prompt,
			},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}

	var respBody chatCompletionResponse
	requestURL := lang.Check(req.URL, a.requestURL)
	_, err := a.cli.Post(ctx, requestURL, reqBody, &respBody)
	if err != nil {
		return model.APIResponse{}, errm.Wrap(err, "failed to make API request")
	}

	if respBody.Error != nil {
		return model.APIResponse{}, errm.Errorf("OpenAI API error: %s", respBody.Error.Message)
	}

	var content string
	if len(respBody.Choices) > 0 {
		content = strings.TrimSpace(respBody.Choices[0].Message.Content)
	}

	out := model.APIResponse{
		CreateTime:       time.Unix(respBody.Created, 0),
		Content:          content,
		PromptTokens:     respBody.Usage.PromptTokens,
		CompletionTokens: respBody.Usage.CompletionTokens,
		TotalTokens:      respBody.Usage.TotalTokens,
	}

	return out, nil
}

// buildRequestURL composes the chat completions endpoint. Azure OpenAI routes
// through a deployment path with an api-version query parameter.
func buildRequestURL(cfg model.ModelConfig) string {
	base := strings.TrimSuffix(cfg.URL, "/")
	if cfg.APIVersion != "" {
		deployment := lang.Check(cfg.Deployment, cfg.Model)
		return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", base, deployment, cfg.APIVersion)
	}
	return base + "/chat/completions"
}

// testConnection tests the connection to OpenAI API
func (a *Agent) testConnection(ctx context.Context) error {
	testPrompt := "Respond with 'OK' if you can understand this message."

	_, err := a.CallAPI(ctx, model.APIRequest{
		Prompt:      testPrompt,
		MaxTokens:   10,
		Temperature: 0.5,
	})
	if err != nil {
		return errm.Wrap(err, "connection test failed")
	}
	return nil
}
