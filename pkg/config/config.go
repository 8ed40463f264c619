// Package config loads sentencepairs settings from an optional YAML file and
// the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Store   StoreConfig   `yaml:"store"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// SourcesConfig locates the Tatoeba exports.
type SourcesConfig struct {
	SentencesPath   string        `yaml:"sentences_path"   env:"SOURCES_SENTENCES_PATH"   env-default:"tmp_files/sentences_detailed.csv"`
	LinksPath       string        `yaml:"links_path"       env:"SOURCES_LINKS_PATH"       env-default:"tmp_files/links.csv"`
	BaseURL         string        `yaml:"base_url"         env:"SOURCES_BASE_URL"         env-default:"https://downloads.tatoeba.org/exports"`
	DownloadTimeout time.Duration `yaml:"download_timeout" env:"SOURCES_DOWNLOAD_TIMEOUT" env-default:"30m"`
}

// OutputConfig says where corpora and the manifest are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"           env:"OUTPUT_DIR"           env-default:"bucket_files"`
	ManifestName string `yaml:"manifest_name" env:"OUTPUT_MANIFEST_NAME" env-default:"info.json"`
}

// BuildConfig controls which corpora are built and how.
type BuildConfig struct {
	Pairs        []string `yaml:"pairs"         env:"BUILD_PAIRS"         env-default:"eng-ita,eng-ara,eng-deu,eng-spa" env-separator:","`
	MaxPairs     int      `yaml:"max_pairs"     env:"BUILD_MAX_PAIRS"     env-default:"15000"`
	Workers      int      `yaml:"workers"       env:"BUILD_WORKERS"       env-default:"1"`
	ScoreWorkers int      `yaml:"score_workers" env:"BUILD_SCORE_WORKERS" env-default:"4"`
}

// StoreConfig enables the SQLite store. An empty path disables it.
type StoreConfig struct {
	Path      string `yaml:"path"       env:"STORE_PATH"`
	BatchSize int    `yaml:"batch_size" env:"STORE_BATCH_SIZE" env-default:"500"`
}

// LoadConfig reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). An empty path
// loads from ENV and defaults only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that defaults cannot guarantee.
func (c *Config) Validate() error {
	if c.Build.MaxPairs <= 0 {
		return fmt.Errorf("build.max_pairs must be > 0 (got %d)", c.Build.MaxPairs)
	}
	if c.Build.Workers <= 0 {
		return fmt.Errorf("build.workers must be > 0 (got %d)", c.Build.Workers)
	}
	if c.Build.ScoreWorkers <= 0 {
		return fmt.Errorf("build.score_workers must be > 0 (got %d)", c.Build.ScoreWorkers)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set")
	}
	return nil
}
