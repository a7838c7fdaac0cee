package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCommits(t *testing.T) []model.Commit {
	t.Helper()
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	return []model.Commit{
		{
			SHA:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			ShortSHA: "aaaaaaa",
			Author:   model.Signature{Name: "Alice", Email: "alice@example.com"},
			Date:     base.Add(48 * time.Hour),
			Message:  "fix flaky login test\n\nlong body that should not appear",
			Files: []model.FileChange{
				{File: "auth/login.go", Insertions: 10, Deletions: 2},
				{File: "auth/login_test.go", Insertions: 30, Deletions: 5},
			},
			Stats: model.CommitStats{TotalFiles: 2, TotalInsertions: 40, TotalDeletions: 7},
		},
		{
			SHA:      "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			ShortSHA: "bbbbbbb",
			Author:   model.Signature{Name: "Bob", Email: "bob@example.com"},
			Date:     base.Add(24 * time.Hour),
			Message:  "update deps",
			Files: []model.FileChange{
				{File: "go.mod", Insertions: 3, Deletions: 3},
			},
			Stats: model.CommitStats{TotalFiles: 1, TotalInsertions: 3, TotalDeletions: 3},
		},
		{
			SHA:      "cccccccccccccccccccccccccccccccccccccccc",
			ShortSHA: "ccccccc",
			Author:   model.Signature{Name: "Alice", Email: "alice@example.com"},
			Date:     base,
			Message:  "refactor login handler",
			Files: []model.FileChange{
				{File: "auth/login.go", Insertions: 5, Deletions: 8},
			},
			Stats: model.CommitStats{TotalFiles: 1, TotalInsertions: 5, TotalDeletions: 8},
		},
	}
}

func TestBuildContributors(t *testing.T) {
	commits := sampleCommits(t)
	contributors := BuildContributors(commits)
	require.Len(t, contributors, 2)

	// Sorted by commit count descending
	alice := contributors[0]
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, 2, alice.Commits)
	assert.Equal(t, 45, alice.Insertions)
	assert.Equal(t, 15, alice.Deletions)
	assert.Equal(t, 2, alice.FilesModified) // login.go counted once
	assert.Equal(t, commits[2].Date, alice.FirstCommit)
	assert.Equal(t, commits[0].Date, alice.LastCommit)

	bob := contributors[1]
	assert.Equal(t, "bob@example.com", bob.Email)
	assert.Equal(t, 1, bob.Commits)
	assert.Equal(t, bob.FirstCommit, bob.LastCommit)
}

func TestBuildContributorsTieBreaksByEmail(t *testing.T) {
	commits := []model.Commit{
		{Author: model.Signature{Email: "zed@example.com"}},
		{Author: model.Signature{Email: "ann@example.com"}},
	}

	contributors := BuildContributors(commits)
	require.Len(t, contributors, 2)
	assert.Equal(t, "ann@example.com", contributors[0].Email)
	assert.Equal(t, "zed@example.com", contributors[1].Email)
}

func TestBuildFileHistory(t *testing.T) {
	history := BuildFileHistory(sampleCommits(t))
	require.Len(t, history, 3)

	entries := history["auth/login.go"]
	require.Len(t, entries, 2)

	// Input commit order is preserved
	assert.Equal(t, "aaaaaaa", entries[0].Commit)
	assert.Equal(t, "ccccccc", entries[1].Commit)

	// Only the subject line of a multi-line message is kept
	assert.Equal(t, "fix flaky login test", entries[0].Message)
	assert.Equal(t, 10, entries[0].Insertions)
	assert.Equal(t, 2, entries[0].Deletions)
}

func TestBuildFileHistoryTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("x", 250)
	history := BuildFileHistory([]model.Commit{{
		ShortSHA: "abcdef1",
		Message:  long,
		Files:    []model.FileChange{{File: "main.go"}},
	}})

	require.Len(t, history["main.go"], 1)
	assert.Len(t, history["main.go"][0].Message, 100)
}

func TestSummarizeFiles(t *testing.T) {
	history := BuildFileHistory(sampleCommits(t))
	summaries := SummarizeFiles(history)
	require.Len(t, summaries, 3)

	// Most-changed file first
	top := summaries[0]
	assert.Equal(t, "auth/login.go", top.File)
	assert.Equal(t, 2, top.TotalChanges)
	assert.Equal(t, 15, top.TotalInsertions)
	assert.Equal(t, 10, top.TotalDeletions)
	assert.Equal(t, 1, top.Contributors)

	// Single-change files tie-break alphabetically
	assert.Equal(t, "auth/login_test.go", summaries[1].File)
	assert.Equal(t, "go.mod", summaries[2].File)
}

func TestRepoDirName(t *testing.T) {
	assert.Equal(t, "failsight", repoDirName("maxbolgarin/failsight"))
	assert.Equal(t, "failsight", repoDirName("group/sub/failsight.git"))
	assert.Equal(t, "my-repo_v2", repoDirName("my-repo_v2"))
	assert.Equal(t, "repo", repoDirName("///"))
}
