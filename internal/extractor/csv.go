package extractor

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
)

const csvDateFormat = "2006-01-02 15:04:05"

func writeCommitsCSV(path string, commits []model.Commit) error {
	rows := [][]string{{"sha", "author", "date", "message", "files_changed", "insertions", "deletions"}}
	for _, commit := range commits {
		rows = append(rows, []string{
			commit.ShortSHA,
			commit.Author.Name,
			commit.Date.Format(csvDateFormat),
			truncateMessage(firstLine(commit.Message), 100),
			strconv.Itoa(len(commit.Files)),
			strconv.Itoa(commit.Stats.TotalInsertions),
			strconv.Itoa(commit.Stats.TotalDeletions),
		})
	}
	return writeCSV(path, rows)
}

func writeContributorsCSV(path string, contributors []model.Contributor) error {
	rows := [][]string{{"name", "email", "commits", "total_insertions", "total_deletions", "files_modified", "first_commit", "last_commit"}}
	for _, contrib := range contributors {
		rows = append(rows, []string{
			contrib.Name,
			contrib.Email,
			strconv.Itoa(contrib.Commits),
			strconv.Itoa(contrib.Insertions),
			strconv.Itoa(contrib.Deletions),
			strconv.Itoa(contrib.FilesModified),
			contrib.FirstCommit.Format(csvDateFormat),
			contrib.LastCommit.Format(csvDateFormat),
		})
	}
	return writeCSV(path, rows)
}

func writeFileSummaryCSV(path string, summaries []model.FileSummary) error {
	rows := [][]string{{"file", "total_changes", "total_insertions", "total_deletions", "contributors"}}
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.File,
			strconv.Itoa(summary.TotalChanges),
			strconv.Itoa(summary.TotalInsertions),
			strconv.Itoa(summary.TotalDeletions),
			strconv.Itoa(summary.Contributors),
		})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errm.Wrap(err, "failed to create CSV file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return errm.Wrap(err, "failed to write CSV rows")
	}

	return writer.Error()
}
