// Package config loads run defaults from the environment (optionally via a
// .env file) and the vendor mapping from a YAML file. Flags override env,
// env overrides built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrConfiguration marks fatal setup problems: missing input paths, bad
// vendor mappings. Callers exit non-zero without writing anything.
var ErrConfiguration = errors.New("configuration")

type Config struct {
	GroundTruthPath string
	OutputDir       string
	MinScore        float64
	DatabasePath    string
	Verbose         bool
}

// Load reads defaults from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GroundTruthPath: getEnv("OCR_EVAL_GT_DATASET", ""),
		OutputDir:       getEnv("OCR_EVAL_OUTPUT_DIR", ""),
		MinScore:        getEnvFloat("OCR_EVAL_MIN_SCORE", 0.0),
		DatabasePath:    getEnv("OCR_EVAL_DB", ""),
		Verbose:         getEnvBool("OCR_EVAL_VERBOSE", false),
	}
}

// Validate checks that the paths an evaluation run depends on exist.
func (c *Config) Validate() error {
	if c.GroundTruthPath == "" {
		return fmt.Errorf("%w: ground truth dataset path is required", ErrConfiguration)
	}
	if _, err := os.Stat(c.GroundTruthPath); err != nil {
		return fmt.Errorf("%w: ground truth dataset not found: %s", ErrConfiguration, c.GroundTruthPath)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("%w: min score must be within [0, 1], got %g", ErrConfiguration, c.MinScore)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value == "true" {
		return true
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
