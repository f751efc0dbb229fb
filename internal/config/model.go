package config

import (
	"context"

	"github.com/knadh/koanf/v2"
)

// Model types accepted in model_type.
const (
	ModelLogisticRegression = "logistic_regression"
	ModelRandomForest       = "random_forest"
	ModelRuleBased          = "rule_based"
)

// ModelConfig selects and locates the classifier.
type ModelConfig struct {
	ModelType          string `koanf:"model_type"`
	ModelSavePath      string `koanf:"model_save_path"`
	EvaluationSavePath string `koanf:"evaluation_save_path"`

	// Rule overrides the default rule_based expression.
	Rule string `koanf:"rule"`

	// ModelParams is informational; fitted parameters live in the artifact.
	ModelParams map[string]any `koanf:"model_params"`
}

// DataConfig locates the raw dataset and the prepared feature tables.
type DataConfig struct {
	RawDataPath           string  `koanf:"raw_data_path"`
	ProcessedDataSavePath string  `koanf:"processed_data_save_path"`
	TestSize              float64 `koanf:"test_size"`
	Seed                  int64   `koanf:"seed"`
}

// LoadModelConfig parses a model YAML file.
func LoadModelConfig(ctx context.Context, path string) (*ModelConfig, error) {
	k, err := loadYAML(ctx, path)
	if err != nil {
		return nil, err
	}
	var mc ModelConfig
	if err := k.UnmarshalWithConf("", &mc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadFailed(path, err)
	}
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	return &mc, nil
}

// Validate checks model_type and the paths it requires.
func (m *ModelConfig) Validate() error {
	switch m.ModelType {
	case ModelRuleBased:
		return nil
	case ModelLogisticRegression, ModelRandomForest:
		if m.ModelSavePath == "" {
			return invalid("model_save_path is required for " + m.ModelType)
		}
		return nil
	case "":
		return invalid("model_type is required")
	default:
		return invalid("unsupported model type: " + m.ModelType)
	}
}

// LoadDataConfig parses a data YAML file and applies split defaults.
func LoadDataConfig(ctx context.Context, path string) (*DataConfig, error) {
	k, err := loadYAML(ctx, path)
	if err != nil {
		return nil, err
	}
	dc := DataConfig{TestSize: 0.2, Seed: 42}
	if err := k.UnmarshalWithConf("", &dc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadFailed(path, err)
	}
	if dc.ProcessedDataSavePath == "" {
		return nil, invalid("processed_data_save_path is required")
	}
	if dc.TestSize <= 0 || dc.TestSize >= 1 {
		return nil, invalid("test_size must be in (0, 1)")
	}
	return &dc, nil
}
