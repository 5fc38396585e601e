// Package config loads snatchboard settings from a JSON preferences file
// and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	appDir    = "snatchboard"
	prefsFile = "preferences.json"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the tunables for tile detection, recognition and snatch
// search.
type Config struct {
	DictionaryPath      string  `json:"dictionary_path"`
	AdjacencySlack      float64 `json:"adjacency_slack"`
	ConfidenceThreshold float64 `json:"confidence_threshold"` // percent, strictly exceeded
	TileLengthInches    float64 `json:"tile_length_inches"`
	OCRDPI              int     `json:"ocr_dpi"`
	MinAspectRatio      float64 `json:"min_aspect_ratio"`
	MaxAspectRatio      float64 `json:"max_aspect_ratio"`
	BinaryThreshold     float64 `json:"binary_threshold"`
	ReadingOrder        bool    `json:"reading_order"`
	Dedupe              bool    `json:"dedupe"`
	FrameHashDistance   int     `json:"frame_hash_distance"` // 0 disables unchanged-frame skipping
	CameraID            int     `json:"camera_id"`
}

// Default returns the tuned defaults.
func Default() Config {
	return Config{
		DictionaryPath:      "collins_scrabble_words_2019.txt",
		AdjacencySlack:      3,
		ConfidenceThreshold: 50,
		TileLengthInches:    0.708661, // 18mm
		OCRDPI:              300,
		MinAspectRatio:      0.8,
		MaxAspectRatio:      1.2,
		BinaryThreshold:     200,
		ReadingOrder:        true,
		Dedupe:              false,
		FrameHashDistance:   0,
		CameraID:            0,
	}
}

// DefaultPath returns ~/.config/snatchboard/preferences.json, or the
// platform equivalent.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Load starts from Default, overlays the preferences file at path if it
// exists, then applies SNATCH_* environment overrides. An empty path skips
// the file. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read preferences %s: %w", path, err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse preferences %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON, creating parent directories.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.DictionaryPath == "":
		return fmt.Errorf("%w: dictionary path is empty", ErrInvalid)
	case !(c.AdjacencySlack > 0):
		return fmt.Errorf("%w: adjacency slack %v must be positive", ErrInvalid, c.AdjacencySlack)
	case c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 100:
		return fmt.Errorf("%w: confidence threshold %v outside [0, 100]", ErrInvalid, c.ConfidenceThreshold)
	case !(c.TileLengthInches > 0):
		return fmt.Errorf("%w: tile length %v must be positive", ErrInvalid, c.TileLengthInches)
	case c.OCRDPI <= 0:
		return fmt.Errorf("%w: OCR DPI %d must be positive", ErrInvalid, c.OCRDPI)
	case c.MinAspectRatio <= 0 || c.MinAspectRatio > c.MaxAspectRatio:
		return fmt.Errorf("%w: aspect bounds [%v, %v]", ErrInvalid, c.MinAspectRatio, c.MaxAspectRatio)
	case c.BinaryThreshold < 0 || c.BinaryThreshold > 255:
		return fmt.Errorf("%w: binary threshold %v outside [0, 255]", ErrInvalid, c.BinaryThreshold)
	case c.FrameHashDistance < 0:
		return fmt.Errorf("%w: frame hash distance %d is negative", ErrInvalid, c.FrameHashDistance)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DictionaryPath = getEnv("SNATCH_DICTIONARY", c.DictionaryPath)
	c.AdjacencySlack = getEnvFloat("SNATCH_SLACK", c.AdjacencySlack)
	c.ConfidenceThreshold = getEnvFloat("SNATCH_CONFIDENCE", c.ConfidenceThreshold)
	c.TileLengthInches = getEnvFloat("SNATCH_TILE_LENGTH", c.TileLengthInches)
	c.OCRDPI = getEnvInt("SNATCH_OCR_DPI", c.OCRDPI)
	c.BinaryThreshold = getEnvFloat("SNATCH_BINARY_THRESHOLD", c.BinaryThreshold)
	c.ReadingOrder = getEnvBool("SNATCH_READING_ORDER", c.ReadingOrder)
	c.Dedupe = getEnvBool("SNATCH_DEDUPE", c.Dedupe)
	c.FrameHashDistance = getEnvInt("SNATCH_FRAME_HASH_DISTANCE", c.FrameHashDistance)
	c.CameraID = getEnvInt("SNATCH_CAMERA", c.CameraID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := strings.ToLower(os.Getenv(key)); v != "" {
		return v == "true" || v == "1"
	}
	return def
}
