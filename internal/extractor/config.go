package extractor

import (
	"slices"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/lang"
)

const (
	defaultOutputDir = "pulled_data"
	defaultDiffLimit = 10000
)

// SourceType represents the type of VCS source the extractor pulls from
type SourceType string

// SupportedSourceTypes defines the supported VCS source types
const (
	GitHub SourceType = "github"
	GitLab SourceType = "gitlab"
)

var supportedSourceTypes = []SourceType{GitHub, GitLab}

// Config represents extractor configuration
type Config struct {
	Type       SourceType `yaml:"type" env:"EXTRACTOR_TYPE"` // github, gitlab
	BaseURL    string     `yaml:"base_url" env:"EXTRACTOR_BASE_URL"`
	Token      string     `yaml:"token" env:"EXTRACTOR_TOKEN"`
	Repository string     `yaml:"repository" env:"EXTRACTOR_REPOSITORY"` // owner/name or group/project
	MaxCommits int        `yaml:"max_commits" env:"EXTRACTOR_MAX_COMMITS"`
	OutputDir  string     `yaml:"output_dir" env:"EXTRACTOR_OUTPUT_DIR"`
	DiffLimit  int        `yaml:"diff_limit" env:"EXTRACTOR_DIFF_LIMIT"` // max diff chars per file before truncation
}

func (c *Config) PrepareAndValidate() error {
	if c.Token == "" {
		return errm.Wrap(model.ErrConfigurationMissing, "extractor token is required")
	}
	if c.Repository == "" {
		return errm.Wrap(model.ErrConfigurationMissing, "extractor repository is required")
	}
	if c.Type == "" || !slices.Contains(supportedSourceTypes, c.Type) {
		return errm.Wrap(model.ErrConfigurationMissing, "invalid extractor type: "+string(c.Type))
	}

	c.OutputDir = lang.Check(c.OutputDir, defaultOutputDir)
	c.DiffLimit = lang.Check(c.DiffLimit, defaultDiffLimit)

	return nil
}
