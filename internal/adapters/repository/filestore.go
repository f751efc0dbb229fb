package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/talentmatch/internal/config"
	"github.com/okian/talentmatch/internal/domain/classifier"
	"github.com/okian/talentmatch/internal/domain/evaluation"
	"github.com/okian/talentmatch/pkg/logger"
)

const (
	defaultFileMode = 0o644
	dirMode         = 0o755
)

// FileStore keeps artifacts as indented JSON files on local disk.
type FileStore struct {
	fileMode fs.FileMode
	log      logger.Logger
}

// NewFileStore creates a file-backed store.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{fileMode: defaultFileMode}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, path string, a classifier.Artifact) error {
	if err := s.writeJSON(ctx, path, a); err != nil {
		return err
	}
	s.info(ctx, "artifact saved",
		logger.String("path", path),
		logger.String("id", a.ID),
		logger.String("model_type", a.ModelType.String()),
	)
	return nil
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, path string) (classifier.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return classifier.Artifact{}, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return classifier.Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return classifier.Artifact{}, fmt.Errorf("%w: %s: %w", config.ErrLoadConfig, path, err)
	}

	var a classifier.Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return classifier.Artifact{}, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	return a, nil
}

// Classifier implements Store. rule_based needs no file; trained kinds load
// model_save_path and must match the configured type.
func (s *FileStore) Classifier(ctx context.Context, mc *config.ModelConfig) (classifier.Classifier, error) {
	kind, err := classifier.ParseKind(mc.ModelType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	if kind == classifier.KindRuleBased {
		rule, err := classifier.NewRule(mc.Rule, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
		}
		s.info(ctx, "rule classifier compiled", logger.String("rule", rule.Expression()))
		return rule, nil
	}

	a, err := s.Load(ctx, mc.ModelSavePath)
	if err != nil {
		return nil, err
	}
	if a.ModelType != kind {
		return nil, fmt.Errorf("%w: %s holds %s, config wants %s", ErrInvalidArtifact, mc.ModelSavePath, a.ModelType, kind)
	}
	c, err := a.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, mc.ModelSavePath, err)
	}
	s.info(ctx, "artifact loaded",
		logger.String("path", mc.ModelSavePath),
		logger.String("id", a.ID),
		logger.String("model_type", kind.String()),
	)
	return c, nil
}

// SaveReport implements Store.
func (s *FileStore) SaveReport(ctx context.Context, path string, r evaluation.Report) error {
	if err := s.writeJSON(ctx, path, r); err != nil {
		return err
	}
	s.info(ctx, "evaluation report saved", logger.String("path", path), logger.String("model_type", r.ModelType))
	return nil
}

func (s *FileStore) writeJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, dir, err)
		}
	}
	if err := os.WriteFile(path, raw, s.fileMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

func (s *FileStore) info(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Info(ctx, msg, fields...)
	}
}
