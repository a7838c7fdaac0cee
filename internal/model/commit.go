package model

import "time"

// Commit represents one extracted git commit with its per-file stats and diffs
type Commit struct {
	SHA       string       `json:"sha"`
	ShortSHA  string       `json:"sha_short"`
	Author    Signature    `json:"author"`
	Committer Signature    `json:"committer"`
	Date      time.Time    `json:"date"`
	Message   string       `json:"message"`
	Parents   []string     `json:"parents,omitempty"`
	Files     []FileChange `json:"changed_files"`
	Diffs     []Diff       `json:"diffs,omitempty"`
	Stats     CommitStats  `json:"stats"`
}

// Signature identifies the author or committer of a commit
type Signature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileChange represents per-file change statistics within a commit
type FileChange struct {
	File       string `json:"file"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Lines      int    `json:"lines"`
}

// Diff represents one file diff of a commit, patch text kept as opaque string
type Diff struct {
	ChangeType string `json:"change_type"`
	OldPath    string `json:"old_path"`
	NewPath    string `json:"new_path"`
	Renamed    bool   `json:"renamed"`
	Deleted    bool   `json:"deleted"`
	NewFile    bool   `json:"new_file"`
	Patch      string `json:"diff,omitempty"`
	Truncated  bool   `json:"truncated"`
}

// CommitStats represents aggregated commit statistics
type CommitStats struct {
	TotalFiles      int `json:"total_files"`
	TotalInsertions int `json:"total_insertions"`
	TotalDeletions  int `json:"total_deletions"`
	TotalLines      int `json:"total_lines"`
}

// Branch represents one branch of the extracted repository
type Branch struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	CommitSHA     string    `json:"commit_sha"`
	CommitMessage string    `json:"commit_message"`
	CommitDate    time.Time `json:"commit_date"`
}
