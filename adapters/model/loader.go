package model

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"peoplelens/domain/core"
	"peoplelens/internal"
	apperrors "peoplelens/internal/errors"
	"peoplelens/ports"
)

// Source loads the serialized attrition model from disk. Source satisfies
// ports.ModelSource.
type Source struct {
	path   string
	logger *internal.Logger
}

var _ ports.ModelSource = (*Source)(nil)

// NewSource creates a model source for the configured path.
func NewSource(path string) *Source {
	return &Source{
		path:   path,
		logger: internal.NewComponentLogger("ModelReader"),
	}
}

// Path returns the configured artifact location.
func (s *Source) Path() string {
	return s.path
}

// Load reads, parses, and validates the model artifact in one pass, then
// stamps its identity. Failures are returned for the caller to treat as
// fatal at startup.
func (s *Source) Load(ctx context.Context) (ports.ModelArtifact, error) {
	artifact, err := s.LoadArtifact(ctx)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// LoadArtifact is Load with the concrete type, for callers that need the
// scoring surface rather than the metadata interface.
func (s *Source) LoadArtifact(ctx context.Context) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	s.logger.Info("Reading model artifact: %s", s.path)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.ModelLoadError(s.path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, apperrors.ModelLoadError(s.path, err)
	}
	if err := artifact.Validate(); err != nil {
		return nil, apperrors.ModelLoadError(s.path, err)
	}

	artifact.ID = core.ModelID(core.NewID())
	artifact.Hash = core.NewModelHash(data)
	artifact.LoadedAt = core.NewLoadedAt(time.Now())

	s.logger.Info("Model parsed in %.2fms (%s, %d trees, %d features)",
		float64(time.Since(start).Nanoseconds())/1e6,
		artifact.Name, artifact.NumTrees(), artifact.NumInputs())
	return &artifact, nil
}
