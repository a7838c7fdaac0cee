package model

// Report represents one raw HTML test report, content is never parsed
type Report struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	SizeKB  float64 `json:"size_kb"`
	Content string  `json:"content"`
}
