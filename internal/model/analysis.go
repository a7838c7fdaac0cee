package model

import "time"

// AnalysisResult is the persisted outcome of one analysis run
type AnalysisResult struct {
	Timestamp       time.Time `json:"timestamp"`
	CommitsAnalyzed int       `json:"commits_analyzed"`
	ReportsAnalyzed int       `json:"reports_analyzed"`
	LLMAnalysis     string    `json:"llm_analysis"`
	RawData         RawData   `json:"raw_data"`
}

// RawData carries copies of the inputs that produced the analysis
type RawData struct {
	Commits     []Commit `json:"commits"`
	TestReports []Report `json:"test_reports"`
}

// ExtractionStats summarizes one extractor batch run
type ExtractionStats struct {
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	DurationSeconds  float64   `json:"duration_seconds"`
	CommitsProcessed int       `json:"commits_processed"`
	FilesTracked     int       `json:"files_tracked"`
	Errors           []string  `json:"errors"`
}

// Contributor represents aggregated per-author statistics
type Contributor struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Commits       int       `json:"commits"`
	Insertions    int       `json:"total_insertions"`
	Deletions     int       `json:"total_deletions"`
	FilesModified int       `json:"files_modified"`
	FirstCommit   time.Time `json:"first_commit"`
	LastCommit    time.Time `json:"last_commit"`
}

// FileHistoryEntry represents one change to a file across the commit history
type FileHistoryEntry struct {
	Commit     string    `json:"commit"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	Message    string    `json:"message"`
	Insertions int       `json:"insertions"`
	Deletions  int       `json:"deletions"`
}

// FileSummary represents aggregated change statistics for one file
type FileSummary struct {
	File            string `json:"file"`
	TotalChanges    int    `json:"total_changes"`
	TotalInsertions int    `json:"total_insertions"`
	TotalDeletions  int    `json:"total_deletions"`
	Contributors    int    `json:"contributors"`
}
