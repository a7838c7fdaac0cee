package analyzer

import (
	"github.com/maxbolgarin/lang"
)

const (
	defaultCommitsFile = "pulled_data/commits_detailed.json"
	defaultReportsDir  = "html-reports"
	defaultOutputFile  = "llm_analysis.json"
	defaultMaxCommits  = 30
)

// Config represents analysis run configuration
type Config struct {
	CommitsFile string `yaml:"commits_file" env:"ANALYSIS_COMMITS_FILE"`
	ReportsDir  string `yaml:"reports_dir" env:"ANALYSIS_REPORTS_DIR"`
	OutputFile  string `yaml:"output_file" env:"ANALYSIS_OUTPUT_FILE"`
	MaxCommits  int    `yaml:"max_commits" env:"ANALYSIS_MAX_COMMITS"`
}

func (c *Config) PrepareAndValidate() error {
	c.CommitsFile = lang.Check(c.CommitsFile, defaultCommitsFile)
	c.ReportsDir = lang.Check(c.ReportsDir, defaultReportsDir)
	c.OutputFile = lang.Check(c.OutputFile, defaultOutputFile)
	c.MaxCommits = lang.Check(c.MaxCommits, defaultMaxCommits)

	return nil
}
