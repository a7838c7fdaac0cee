package prompts

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/failsight/internal/model"
)

const shortSHALength = 8

// Builder provides methods to build analysis prompts
type Builder struct{}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildAnalysisPrompt creates the failure analysis prompt: a fixed instructional
// preamble, a human-readable rendering of every commit and the complete raw text
// of every report. Nothing is truncated or summarized, the caller is responsible
// for staying under the model input limit.
func (b *Builder) BuildAnalysisPrompt(commits []model.Commit, reports []model.Report) model.Prompt {
	userPrompt := fmt.Sprintf(analysisUserPromptTemplate,
		len(commits),
		b.renderCommits(commits),
		b.renderReports(reports),
	)

	return model.Prompt{
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   userPrompt,
	}
}

// renderCommits builds one readable block per commit: hash, author, date,
// message and the list of touched files.
func (b *Builder) renderCommits(commits []model.Commit) string {
	var sb strings.Builder

	for _, commit := range commits {
		sb.WriteString(fmt.Sprintf("\n--- COMMIT %s ---\n", shortSHA(commit)))
		sb.WriteString(fmt.Sprintf("Author: %s <%s>\n", commit.Author.Name, commit.Author.Email))
		sb.WriteString(fmt.Sprintf("Date: %s\n", commit.Date.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("Message: %s\n", commit.Message))
		sb.WriteString(fmt.Sprintf("Files changed (%d):\n", len(commit.Files)))

		for _, file := range commit.Files {
			sb.WriteString(fmt.Sprintf("  - %s (+%d/-%d)\n", file.File, file.Insertions, file.Deletions))
		}
	}

	return sb.String()
}

// renderReports appends the full raw HTML of every report with a name header.
func (b *Builder) renderReports(reports []model.Report) string {
	var sb strings.Builder

	for i, report := range reports {
		sb.WriteString(fmt.Sprintf("\n\n--- TEST REPORT %d: %s (%.2f KB) ---\n", i+1, report.Name, report.SizeKB))
		sb.WriteString(report.Content)
	}

	return sb.String()
}

func shortSHA(commit model.Commit) string {
	if commit.ShortSHA != "" {
		return commit.ShortSHA
	}
	if len(commit.SHA) > shortSHALength {
		return commit.SHA[:shortSHALength]
	}
	return commit.SHA
}
