package extractor

import (
	"sort"

	"github.com/maxbolgarin/failsight/internal/model"
)

// BuildContributors aggregates per-author statistics from the commit list,
// keyed by author email, sorted by commit count descending.
func BuildContributors(commits []model.Commit) []model.Contributor {
	byEmail := make(map[string]*model.Contributor)
	filesByEmail := make(map[string]map[string]struct{})

	for _, commit := range commits {
		email := commit.Author.Email

		contrib, ok := byEmail[email]
		if !ok {
			contrib = &model.Contributor{
				Name:        commit.Author.Name,
				Email:       email,
				FirstCommit: commit.Date,
				LastCommit:  commit.Date,
			}
			byEmail[email] = contrib
			filesByEmail[email] = make(map[string]struct{})
		}

		contrib.Commits++
		contrib.Insertions += commit.Stats.TotalInsertions
		contrib.Deletions += commit.Stats.TotalDeletions

		for _, file := range commit.Files {
			filesByEmail[email][file.File] = struct{}{}
		}

		if commit.Date.Before(contrib.FirstCommit) {
			contrib.FirstCommit = commit.Date
		}
		if commit.Date.After(contrib.LastCommit) {
			contrib.LastCommit = commit.Date
		}
	}

	contributors := make([]model.Contributor, 0, len(byEmail))
	for email, contrib := range byEmail {
		contrib.FilesModified = len(filesByEmail[email])
		contributors = append(contributors, *contrib)
	}

	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].Commits != contributors[j].Commits {
			return contributors[i].Commits > contributors[j].Commits
		}
		return contributors[i].Email < contributors[j].Email
	})

	return contributors
}

// BuildFileHistory maps every touched file to its chronological change entries,
// preserving the commit order of the input.
func BuildFileHistory(commits []model.Commit) map[string][]model.FileHistoryEntry {
	history := make(map[string][]model.FileHistoryEntry)

	for _, commit := range commits {
		for _, file := range commit.Files {
			history[file.File] = append(history[file.File], model.FileHistoryEntry{
				Commit:     commit.ShortSHA,
				Author:     commit.Author.Name,
				Date:       commit.Date,
				Message:    truncateMessage(firstLine(commit.Message), 100),
				Insertions: file.Insertions,
				Deletions:  file.Deletions,
			})
		}
	}

	return history
}

// SummarizeFiles builds per-file totals from the file history, sorted by
// change count descending.
func SummarizeFiles(history map[string][]model.FileHistoryEntry) []model.FileSummary {
	summaries := make([]model.FileSummary, 0, len(history))

	for file, changes := range history {
		summary := model.FileSummary{
			File:         file,
			TotalChanges: len(changes),
		}

		authors := make(map[string]struct{})
		for _, change := range changes {
			summary.TotalInsertions += change.Insertions
			summary.TotalDeletions += change.Deletions
			authors[change.Author] = struct{}{}
		}
		summary.Contributors = len(authors)

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalChanges != summaries[j].TotalChanges {
			return summaries[i].TotalChanges > summaries[j].TotalChanges
		}
		return summaries[i].File < summaries[j].File
	})

	return summaries
}
