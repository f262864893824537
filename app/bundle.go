package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
	"peoplelens/internal"
	"peoplelens/ports"
)

// Bundle is the read-only resource set every entry point works against:
// the dataset, the model artifact, and the static model report. It is
// constructed once at process start, never mutated afterwards, and passed
// explicitly into servers and commands. Construction failure is fatal to
// the process.
type Bundle struct {
	Dataset *employee.Dataset
	Model   ports.ModelArtifact
	Report  insight.ModelReport
}

// LoadBundle reads both startup artifacts, in parallel since neither
// depends on the other. Either failure aborts the whole load.
func LoadBundle(ctx context.Context, datasetSource ports.DatasetSource, modelSource ports.ModelSource) (*Bundle, error) {
	logger := internal.NewComponentLogger("Bundle")

	bundle := &Bundle{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ds, err := datasetSource.Load(gctx)
		if err != nil {
			return err
		}
		bundle.Dataset = ds
		logger.Info("📊 Dataset loaded: %d rows from %s (hash %s)", ds.Len(), datasetSource.Path(), ds.Hash.Short())
		return nil
	})

	g.Go(func() error {
		artifact, err := modelSource.Load(gctx)
		if err != nil {
			return err
		}
		bundle.Model = artifact
		logger.Info("🤖 Model loaded: %s with %d trees from %s", artifact.Algorithm(), artifact.NumTrees(), modelSource.Path())
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := BuildModelReport(bundle.Model)
	if err != nil {
		return nil, err
	}
	bundle.Report = report

	return bundle, nil
}

// NewEngineFromBundle wires the engine to the bundle's dataset.
func NewEngineFromBundle(bundle *Bundle) *Engine {
	return NewEngine(bundle.Dataset)
}
