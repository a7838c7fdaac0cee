package storage

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/failsight/internal/model/interfaces"
	"github.com/maxbolgarin/logze/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ interfaces.ResultStore = (*Store)(nil)

// Store persists analysis results as one JSON document at a fixed path.
// Writes go to a temp file in the same directory followed by a rename, so a
// failed run never replaces or corrupts the previous valid result.
type Store struct {
	path string
	log  logze.Logger
}

// New creates a result store writing to the given output path
func New(path string) *Store {
	return &Store{
		path: path,
		log:  logze.With("component", "storage"),
	}
}

// SaveAnalysis serializes the result and atomically replaces the output file
func (s *Store) SaveAnalysis(result model.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}

	// CreateTemp uses 0600, the published result should be world-readable
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", model.ErrSerialization, err)
	}

	s.log.Info("analysis saved", "file", s.path, "size_bytes", len(data))

	return nil
}

// LoadAnalysis reads back the last persisted result
func (s *Store) LoadAnalysis() (model.AnalysisResult, error) {
	var result model.AnalysisResult

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, errm.Wrap(model.ErrInputNotFound, "analysis result "+s.path)
		}
		return result, errm.Wrap(err, "failed to read analysis result")
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, errm.Wrap(err, "failed to parse analysis result")
	}

	return result, nil
}
