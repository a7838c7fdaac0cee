package model

// SourceConfig represents source repository access configuration for the extractor
type SourceConfig struct {
	BaseURL       string
	Token         string
	DiffCharLimit int
}
