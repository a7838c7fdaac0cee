package prompts

import (
	"testing"
	"time"

	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnalysisPrompt(t *testing.T) {
	commits := []model.Commit{
		{
			SHA:      "d4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3",
			ShortSHA: "d4f5a6b",
			Author:   model.Signature{Name: "alice", Email: "alice@example.com"},
			Date:     time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			Message:  "fix flaky login test",
			Files: []model.FileChange{
				{File: "tests/login.spec.ts", Insertions: 4, Deletions: 1},
			},
		},
	}
	reports := []model.Report{
		{Name: "report.html", SizeKB: 1.5, Content: "<html><body>TimeoutError at line 42</body></html>"},
	}

	builder := NewBuilder()
	prompt := builder.BuildAnalysisPrompt(commits, reports)

	require.NotEmpty(t, prompt.SystemPrompt)
	assert.Contains(t, prompt.SystemPrompt, "QA engineer")

	// Report text is included verbatim, never summarized
	assert.Contains(t, prompt.UserPrompt, "<html><body>TimeoutError at line 42</body></html>")
	assert.Contains(t, prompt.UserPrompt, "TEST REPORT 1: report.html (1.50 KB)")

	// Commit rendering
	assert.Contains(t, prompt.UserPrompt, "COMMIT d4f5a6b")
	assert.Contains(t, prompt.UserPrompt, "Author: alice <alice@example.com>")
	assert.Contains(t, prompt.UserPrompt, "Message: fix flaky login test")
	assert.Contains(t, prompt.UserPrompt, "tests/login.spec.ts (+4/-1)")
	assert.Contains(t, prompt.UserPrompt, "Last 1 commits")

	// The six requested analysis sections
	assert.Contains(t, prompt.UserPrompt, "Root cause analysis")
	assert.Contains(t, prompt.UserPrompt, "Which commits might have introduced the issues")
	assert.Contains(t, prompt.UserPrompt, "file/line references")
	assert.Contains(t, prompt.UserPrompt, "error messages and their meanings")
	assert.Contains(t, prompt.UserPrompt, "recommendations to fix the issues")
	assert.Contains(t, prompt.UserPrompt, "Patterns or trends")
}

func TestBuildAnalysisPromptNoTruncation(t *testing.T) {
	big := make([]byte, 256*1024)
	for i := range big {
		big[i] = 'a' + byte(i%26)
	}
	reports := []model.Report{{Name: "huge.html", SizeKB: 256, Content: string(big)}}

	builder := NewBuilder()
	prompt := builder.BuildAnalysisPrompt(nil, reports)

	assert.Contains(t, prompt.UserPrompt, string(big))
}

func TestShortSHAFallback(t *testing.T) {
	commit := model.Commit{SHA: "0123456789abcdef0123456789abcdef01234567"}
	assert.Equal(t, "01234567", shortSHA(commit))

	commit.ShortSHA = "0123456"
	assert.Equal(t, "0123456", shortSHA(commit))

	assert.Equal(t, "abc", shortSHA(model.Commit{SHA: "abc"}))
}
