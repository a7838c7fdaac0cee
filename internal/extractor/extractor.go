package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/logze/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const outputDirTimeFormat = "20060102_150405"

// Extractor exports commit history and repository summaries from a VCS source
// into the JSON shape the analyzer consumes. One-shot batch: a failed run is
// re-run from scratch, nothing is resumable.
type Extractor struct {
	provider interfaces.SourceProvider

	cfg Config
	log logze.Logger
}

// New creates a new extractor for the configured source
func New(cfg Config) (*Extractor, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, erro.Wrap(err, "create provider")
	}

	return &Extractor{
		provider: provider,
		cfg:      cfg,
		log:      logze.With("component", "extractor"),
	}, nil
}

// Run extracts commits, branches, contributor statistics and file history,
// writing each category as JSON (plus CSV summaries) into a timestamped
// directory under the configured output root. Returns the directory path.
func (e *Extractor) Run(ctx context.Context) (string, error) {
	start := time.Now()
	stats := model.ExtractionStats{StartTime: start, Errors: []string{}}

	outDir := filepath.Join(e.cfg.OutputDir, repoDirName(e.cfg.Repository)+"_"+start.Format(outputDirTimeFormat))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", erro.Wrap(err, "create output directory")
	}

	e.log.Info("starting extraction", "repository", e.cfg.Repository, "output", outDir)

	commits, err := e.provider.ListCommits(ctx, e.cfg.Repository, e.cfg.MaxCommits)
	if err != nil {
		return "", erro.Wrap(err, "list commits")
	}
	e.log.Info("commits extracted", "count", len(commits))

	branches, err := e.provider.ListBranches(ctx, e.cfg.Repository)
	if err != nil {
		// Branches are auxiliary, the commit export is still useful without them
		e.log.Error("failed to list branches", "error", err)
		stats.Errors = append(stats.Errors, "list branches: "+err.Error())
	}
	if branches == nil {
		branches = []model.Branch{}
	}

	contributors := BuildContributors(commits)
	history := BuildFileHistory(commits)
	summaries := SummarizeFiles(history)

	if err := e.saveJSON(outDir, "commits_detailed.json", commits); err != nil {
		return "", err
	}
	if err := e.saveJSON(outDir, "branches.json", branches); err != nil {
		return "", err
	}
	if err := e.saveJSON(outDir, "contributors.json", contributors); err != nil {
		return "", err
	}
	if err := e.saveJSON(outDir, "file_history.json", history); err != nil {
		return "", err
	}

	if err := writeCommitsCSV(filepath.Join(outDir, "commits_summary.csv"), commits); err != nil {
		return "", erro.Wrap(err, "write commits summary")
	}
	if err := writeContributorsCSV(filepath.Join(outDir, "contributors.csv"), contributors); err != nil {
		return "", erro.Wrap(err, "write contributors summary")
	}
	if err := writeFileSummaryCSV(filepath.Join(outDir, "file_summary.csv"), summaries); err != nil {
		return "", erro.Wrap(err, "write file summary")
	}

	stats.EndTime = time.Now()
	stats.DurationSeconds = stats.EndTime.Sub(start).Seconds()
	stats.CommitsProcessed = len(commits)
	stats.FilesTracked = len(history)

	if err := e.saveJSON(outDir, "extraction_stats.json", stats); err != nil {
		return "", err
	}

	e.log.Info("extraction complete",
		"commits", stats.CommitsProcessed,
		"branches", len(branches),
		"contributors", len(contributors),
		"files_tracked", stats.FilesTracked,
		"duration", stats.EndTime.Sub(start).String(),
	)

	return outDir, nil
}

func (e *Extractor) saveJSON(dir, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return erro.Wrap(err, "marshal "+name)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return erro.Wrap(err, "write "+name)
	}
	e.log.Info("saved", "file", name, "size_bytes", len(data))
	return nil
}

// repoDirName derives a filesystem-safe directory name from the repository path
func repoDirName(repo string) string {
	name := repo
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")

	var sb strings.Builder
	for _, r := range name {
		if r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "repo"
	}
	return sb.String()
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return line
}

func truncateMessage(message string, limit int) string {
	if len(message) > limit {
		return message[:limit]
	}
	return message
}
