package extractor

import (
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/failsight/internal/extractor/github"
	"github.com/maxbolgarin/failsight/internal/extractor/gitlab"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
)

// newProvider creates a new VCS source provider based on the configuration
func newProvider(cfg Config) (interfaces.SourceProvider, error) {
	sourceCfg := model.SourceConfig{
		BaseURL:       cfg.BaseURL,
		Token:         cfg.Token,
		DiffCharLimit: cfg.DiffLimit,
	}

	var provider interfaces.SourceProvider
	var err error

	switch cfg.Type {
	case GitHub:
		provider, err = github.New(sourceCfg)
	case GitLab:
		provider, err = gitlab.New(sourceCfg)
	default:
		return nil, erro.New("unsupported source type: %s", cfg.Type)
	}
	if err != nil {
		return nil, erro.Wrap(err, "failed to create provider")
	}

	return provider, nil
}
