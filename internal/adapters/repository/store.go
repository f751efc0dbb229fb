// Package repository persists classifier artifacts and evaluation reports.
package repository

import (
	"context"

	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/evaluation"
)

// Store provides read/write access to model artifacts.
type Store interface {
	// Save writes the artifact to path, creating parent directories.
	Save(ctx context.Context, path string, a classifier.Artifact) error
	// Load reads the artifact at path. Returns ErrNotFound if it does not exist.
	Load(ctx context.Context, path string) (classifier.Artifact, error)
	// Classifier builds the classifier selected by a model config.
	Classifier(ctx context.Context, mc *config.ModelConfig) (classifier.Classifier, error)
	// SaveReport writes evaluation metrics to path.
	SaveReport(ctx context.Context, path string, r evaluation.Report) error
}
