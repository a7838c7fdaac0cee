package loader

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

const (
	defaultMaxCommits = 30
	reportExtension   = ".html"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Loader reads analysis inputs from the filesystem
type Loader struct {
	log logze.Logger
}

// New creates a new input loader
func New() *Loader {
	return &Loader{
		log: logze.With("component", "loader"),
	}
}

// LoadCommits reads the commits JSON file and returns up to limit most recent
// records, preserving the order they appear in the file.
func (l *Loader) LoadCommits(path string, limit int) ([]model.Commit, error) {
	limit = lang.Check(limit, defaultMaxCommits)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errm.Wrap(model.ErrInputNotFound, "commits file "+path)
		}
		return nil, errm.Wrap(err, "failed to read commits file")
	}

	var commits []model.Commit
	if err := json.Unmarshal(data, &commits); err != nil {
		return nil, errm.Wrap(err, "failed to parse commits file")
	}

	if len(commits) > limit {
		commits = commits[:limit]
	}

	l.log.Info("commits loaded", "file", path, "count", len(commits))

	return commits, nil
}

// LoadReports reads every HTML file of the reports folder as opaque text.
// A missing folder or a folder without HTML files yields an empty slice,
// not an error, so callers decide how to treat the empty case.
func (l *Loader) LoadReports(dir string) ([]model.Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Warn("reports folder not found", "dir", dir)
			return nil, nil
		}
		return nil, errm.Wrap(err, "failed to read reports folder")
	}

	var reports []model.Report
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), reportExtension) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errm.Wrap(err, "failed to read report "+entry.Name())
		}

		reports = append(reports, model.Report{
			Name:    entry.Name(),
			Path:    path,
			SizeKB:  math.Round(float64(len(content))/1024*100) / 100,
			Content: string(content),
		})
	}

	l.log.Info("test reports loaded", "dir", dir, "count", len(reports))

	return reports, nil
}
