package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	response string
	err      error

	calls      int
	gotCommits int
	gotReports int
}

func (f *fakeAgent) AnalyzeFailures(_ context.Context, commits []model.Commit, reports []model.Report) (string, error) {
	f.calls++
	f.gotCommits = len(commits)
	f.gotReports = len(reports)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func setupInputs(t *testing.T) (commitsFile, reportsDir string) {
	t.Helper()
	dir := t.TempDir()

	commits := []model.Commit{
		{SHA: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", ShortSHA: "aaaaaaa", Message: "fix login", Date: time.Now().UTC().Truncate(time.Second)},
		{SHA: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", ShortSHA: "bbbbbbb", Message: "update deps", Date: time.Now().UTC().Truncate(time.Second)},
	}
	data, err := json.Marshal(commits)
	require.NoError(t, err)

	commitsFile = filepath.Join(dir, "commits_detailed.json")
	require.NoError(t, os.WriteFile(commitsFile, data, 0o644))

	reportsDir = filepath.Join(dir, "html-reports")
	require.NoError(t, os.MkdirAll(reportsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(reportsDir, "run1.html"), []byte("<html>all passed</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(reportsDir, "run2.html"), []byte("<html>AssertionError: expected true</html>"), 0o644))

	return commitsFile, reportsDir
}

func TestRunEndToEnd(t *testing.T) {
	commitsFile, reportsDir := setupInputs(t)
	outputFile := filepath.Join(t.TempDir(), "llm_analysis.json")

	agent := &fakeAgent{response: "Root cause: assertion failure introduced by commit aaaaaaa."}
	store := storage.New(outputFile)

	anl, err := New(Config{
		CommitsFile: commitsFile,
		ReportsDir:  reportsDir,
		OutputFile:  outputFile,
	}, agent, store)
	require.NoError(t, err)

	result, err := anl.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, agent.calls)
	assert.Equal(t, 2, agent.gotCommits)
	assert.Equal(t, 2, agent.gotReports)

	assert.Equal(t, 2, result.CommitsAnalyzed)
	assert.Equal(t, 2, result.ReportsAnalyzed)
	assert.NotEmpty(t, result.LLMAnalysis)
	assert.Len(t, result.RawData.Commits, 2)
	assert.Len(t, result.RawData.TestReports, 2)

	// Persisted file matches the returned result
	saved, err := store.LoadAnalysis()
	require.NoError(t, err)
	assert.Equal(t, result.LLMAnalysis, saved.LLMAnalysis)
	assert.Equal(t, 2, saved.CommitsAnalyzed)
}

func TestRunModelFailureKeepsPreviousResult(t *testing.T) {
	commitsFile, reportsDir := setupInputs(t)
	outputFile := filepath.Join(t.TempDir(), "llm_analysis.json")
	store := storage.New(outputFile)

	// First run succeeds and persists a result
	okAgent := &fakeAgent{response: "everything is fine"}
	anl, err := New(Config{CommitsFile: commitsFile, ReportsDir: reportsDir, OutputFile: outputFile}, okAgent, store)
	require.NoError(t, err)
	_, err = anl.Run(context.Background())
	require.NoError(t, err)

	before, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// Second run fails at the model call, the previous output must survive
	failErr := errors.New("rate limit exceeded")
	failing := &fakeAgent{err: failErr}
	anl, err = New(Config{CommitsFile: commitsFile, ReportsDir: reportsDir, OutputFile: outputFile}, failing, store)
	require.NoError(t, err)

	_, err = anl.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, failErr)

	after, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunMissingCommitsFileBeforeModelCall(t *testing.T) {
	dir := t.TempDir()
	agent := &fakeAgent{response: "unused"}
	store := storage.New(filepath.Join(dir, "llm_analysis.json"))

	anl, err := New(Config{
		CommitsFile: filepath.Join(dir, "missing.json"),
		ReportsDir:  dir,
		OutputFile:  filepath.Join(dir, "llm_analysis.json"),
	}, agent, store)
	require.NoError(t, err)

	_, err = anl.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInputNotFound)

	// No model call was attempted and nothing was written
	assert.Zero(t, agent.calls)
	_, statErr := os.Stat(filepath.Join(dir, "llm_analysis.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunZeroReportsIsNotAnError(t *testing.T) {
	commitsFile, _ := setupInputs(t)
	dir := t.TempDir()
	outputFile := filepath.Join(dir, "llm_analysis.json")

	agent := &fakeAgent{response: "no reports to analyze, commit history looks healthy"}
	store := storage.New(outputFile)

	anl, err := New(Config{
		CommitsFile: commitsFile,
		ReportsDir:  filepath.Join(dir, "no-reports-here"),
		OutputFile:  outputFile,
	}, agent, store)
	require.NoError(t, err)

	result, err := anl.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ReportsAnalyzed)
	assert.Equal(t, 0, agent.gotReports)
	assert.Equal(t, 1, agent.calls)
}
