package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/talentmatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TALENTMATCH_ADDR", ":9000")
			_ = os.Setenv("TALENTMATCH_QUEUE_SIZE", "2048")
			_ = os.Setenv("TALENTMATCH_WORKER_COUNT", "6")
			_ = os.Setenv("TALENTMATCH_MAX_BULK_PAIRS", "500")
			_ = os.Setenv("TALENTMATCH_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 2048)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 6)
				convey.So(cfg.MaxBulkPairs, convey.ShouldEqual, 500)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeTempFile(t, "service.yaml", `
addr: ":9090"
queue_size: 300
worker_count: 24
parallel_threshold: 8
model_config: "config/model_random_forest.yaml"
`)
			_ = os.Setenv("TALENTMATCH_CONFIG", path)
			_ = os.Setenv("TALENTMATCH_WORKER_COUNT", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)
				convey.So(cfg.ParallelThreshold, convey.ShouldEqual, 8)
				convey.So(cfg.ModelConfig, convey.ShouldEqual, "config/model_random_forest.yaml")
				convey.So(cfg.MaxBulkPairs, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := writeTempFile(t, "broken.yaml", `invalid: yaml: content: [`)
			_ = os.Setenv("TALENTMATCH_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a configuration error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, config.ErrConfiguration), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TALENTMATCH_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("TALENTMATCH_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("TALENTMATCH_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := config.Load(cctx)

			convey.Convey("Then loading stops", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

func TestLoadModelConfig(t *testing.T) {
	convey.Convey("Given model config files", t, func() {
		ctx := context.Background()

		convey.Convey("When the file describes a random forest", func() {
			path := writeTempFile(t, "model_random_forest.yaml", `
model_type: random_forest
model_save_path: models/random_forest.json
evaluation_save_path: evaluation/random_forest.json
model_params:
  n_estimators: 100
`)
			mc, err := config.LoadModelConfig(ctx, path)

			convey.Convey("Then all fields are read", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(mc.ModelType, convey.ShouldEqual, config.ModelRandomForest)
				convey.So(mc.ModelSavePath, convey.ShouldEqual, "models/random_forest.json")
				convey.So(mc.EvaluationSavePath, convey.ShouldEqual, "evaluation/random_forest.json")
				convey.So(mc.ModelParams, convey.ShouldContainKey, "n_estimators")
			})
		})

		convey.Convey("When the file describes a rule based model with a custom rule", func() {
			path := writeTempFile(t, "model_rule_based.yaml", `
model_type: rule_based
rule: "salary_match_binary == 1.0"
`)
			mc, err := config.LoadModelConfig(ctx, path)

			convey.Convey("Then no save path is needed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(mc.Rule, convey.ShouldEqual, "salary_match_binary == 1.0")
			})
		})

		convey.Convey("When a trained model has no save path", func() {
			path := writeTempFile(t, "model_lr.yaml", `model_type: logistic_regression`)
			_, err := config.LoadModelConfig(ctx, path)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the model type is unknown", func() {
			path := writeTempFile(t, "model_svm.yaml", `model_type: svm`)
			_, err := config.LoadModelConfig(ctx, path)

			convey.Convey("Then it is a configuration error", func() {
				convey.So(errors.Is(err, config.ErrConfiguration), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "svm")
			})
		})

		convey.Convey("When the path is empty or missing", func() {
			_, errEmpty := config.LoadModelConfig(ctx, "")
			_, errMissing := config.LoadModelConfig(ctx, filepath.Join(t.TempDir(), "nope.yaml"))

			convey.Convey("Then both are configuration errors", func() {
				convey.So(errors.Is(errEmpty, config.ErrConfiguration), convey.ShouldBeTrue)
				convey.So(errors.Is(errMissing, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestLoadDataConfig(t *testing.T) {
	convey.Convey("Given data config files", t, func() {
		ctx := context.Background()

		convey.Convey("When split settings are omitted", func() {
			path := writeTempFile(t, "data_config.yaml", `
raw_data_path: data/raw/data.json
processed_data_save_path: data/processed
`)
			dc, err := config.LoadDataConfig(ctx, path)

			convey.Convey("Then defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(dc.RawDataPath, convey.ShouldEqual, "data/raw/data.json")
				convey.So(dc.ProcessedDataSavePath, convey.ShouldEqual, "data/processed")
				convey.So(dc.TestSize, convey.ShouldEqual, 0.2)
				convey.So(dc.Seed, convey.ShouldEqual, int64(42))
			})
		})

		convey.Convey("When split settings are given", func() {
			path := writeTempFile(t, "data_config.yaml", `
processed_data_save_path: out
test_size: 0.3
seed: 7
`)
			dc, err := config.LoadDataConfig(ctx, path)

			convey.Convey("Then they are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(dc.TestSize, convey.ShouldEqual, 0.3)
				convey.So(dc.Seed, convey.ShouldEqual, int64(7))
			})
		})

		convey.Convey("When test_size is out of range", func() {
			path := writeTempFile(t, "data_config.yaml", `
processed_data_save_path: out
test_size: 1.5
`)
			_, err := config.LoadDataConfig(ctx, path)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the output directory is missing", func() {
			path := writeTempFile(t, "data_config.yaml", `raw_data_path: data.json`)
			_, err := config.LoadDataConfig(ctx, path)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// clearConfigEnvVars clears all TALENTMATCH_ environment variables.
func clearConfigEnvVars() {
	for _, v := range []string{
		"TALENTMATCH_CONFIG",
		"TALENTMATCH_ADDR",
		"TALENTMATCH_LOG_LEVEL",
		"TALENTMATCH_LOG_FORMAT",
		"TALENTMATCH_QUEUE_SIZE",
		"TALENTMATCH_WORKER_COUNT",
		"TALENTMATCH_PARALLEL_THRESHOLD",
		"TALENTMATCH_MAX_BULK_PAIRS",
		"TALENTMATCH_MODEL_CONFIG",
	} {
		_ = os.Unsetenv(v)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
