package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/logze/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	commits     []model.Commit
	branches    []model.Branch
	branchesErr error
}

func (f *fakeProvider) ListCommits(_ context.Context, _ string, _ int) ([]model.Commit, error) {
	return f.commits, nil
}

func (f *fakeProvider) ListBranches(_ context.Context, _ string) ([]model.Branch, error) {
	if f.branchesErr != nil {
		return nil, f.branchesErr
	}
	return f.branches, nil
}

func newTestExtractor(t *testing.T, provider *fakeProvider) *Extractor {
	t.Helper()
	return &Extractor{
		provider: provider,
		cfg: Config{
			Repository: "maxbolgarin/failsight",
			MaxCommits: 30,
			OutputDir:  t.TempDir(),
		},
		log: logze.With("component", "extractor"),
	}
}

func TestRunWritesAllOutputFiles(t *testing.T) {
	provider := &fakeProvider{
		commits:  sampleCommits(t),
		branches: []model.Branch{{Name: "main", CommitSHA: "aaaaaaa"}},
	}

	outDir, err := newTestExtractor(t, provider).Run(context.Background())
	require.NoError(t, err)

	for _, name := range []string{
		"commits_detailed.json",
		"branches.json",
		"contributors.json",
		"file_history.json",
		"extraction_stats.json",
		"commits_summary.csv",
		"contributors.csv",
		"file_summary.csv",
	} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr, "expected %s in output", name)
	}

	assert.Contains(t, filepath.Base(outDir), "failsight_")
}

func TestRunBranchesFailureWritesEmptyList(t *testing.T) {
	provider := &fakeProvider{
		commits:     sampleCommits(t),
		branchesErr: errors.New("403 insufficient scope"),
	}

	outDir, err := newTestExtractor(t, provider).Run(context.Background())
	require.NoError(t, err)

	// A failed branch listing yields an empty list, not null
	data, err := os.ReadFile(filepath.Join(outDir, "branches.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var stats model.ExtractionStats
	statsData, err := os.ReadFile(filepath.Join(outDir, "extraction_stats.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(statsData, &stats))
	require.Len(t, stats.Errors, 1)
	assert.Contains(t, stats.Errors[0], "list branches")
}
