package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete verbscope configuration
type Config struct {
	Preprocess  PreprocessConfig  `json:"preprocess" yaml:"preprocess" mapstructure:"preprocess"`
	OCR         OCRConfig         `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	Clean       CleanConfig       `json:"clean" yaml:"clean" mapstructure:"clean"`
	Analyze     AnalyzeConfig     `json:"analyze" yaml:"analyze" mapstructure:"analyze"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	Cache       CacheConfig       `json:"cache" yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `json:"llm" yaml:"llm" mapstructure:"llm"`
}

// PreprocessConfig selects the image transform chain applied before OCR
type PreprocessConfig struct {
	// Chain is a comma-separated transform list (e.g. "gray,otsu").
	// Empty means automatic chain selection.
	Chain string `json:"chain" yaml:"chain" mapstructure:"chain"`
	// Auto tries several candidate chains and keeps the one that
	// produces the most text. Ignored when Chain is set.
	Auto bool `json:"auto" yaml:"auto" mapstructure:"auto"`
}

// OCRConfig configures the Tesseract engine
type OCRConfig struct {
	Languages []string `json:"languages" yaml:"languages" mapstructure:"languages"` // trained data hints, e.g. ["eng"]
	PSM       int      `json:"psm" yaml:"psm" mapstructure:"psm"`                   // page segmentation mode (0 = engine default)
	DPI       int      `json:"dpi" yaml:"dpi" mapstructure:"dpi"`                   // effective dots-per-inch (0 = unknown)
}

// CleanConfig configures text normalization
type CleanConfig struct {
	Lowercase bool `json:"lowercase" yaml:"lowercase" mapstructure:"lowercase"`
}

// AnalyzeConfig configures verb analysis
type AnalyzeConfig struct {
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n"` // verbs shown in summaries and charts
}

// OutputConfig configures result writing
type OutputConfig struct {
	Dir     string   `json:"dir" yaml:"dir" mapstructure:"dir"`
	Formats []string `json:"formats" yaml:"formats" mapstructure:"formats"` // json, csv, txt
	Chart   bool     `json:"chart" yaml:"chart" mapstructure:"chart"`
	Verbose bool     `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// CacheConfig configures OCR result caching
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `json:"dir" yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// LLMConfig configures the optional LLM report summary
type LLMConfig struct {
	Provider  string `json:"provider,omitempty" yaml:"provider" mapstructure:"provider"` // openai, ollama, "" (disabled)
	Model     string `json:"model,omitempty" yaml:"model" mapstructure:"model"`
	APIKey    string `json:"-" yaml:"-" mapstructure:"api_key"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `json:"timeout" yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// KnownFormats lists the valid output format names
var KnownFormats = []string{"json", "csv", "txt"}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Preprocess: PreprocessConfig{
			Chain: "",
			Auto:  true,
		},
		OCR: OCRConfig{
			Languages: []string{"eng"},
		},
		Clean: CleanConfig{
			Lowercase: false,
		},
		Analyze: AnalyzeConfig{
			TopN: 10,
		},
		Output: OutputConfig{
			Dir:     "output",
			Formats: []string{"json", "csv", "txt"},
			Chart:   false,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".verbscope-cache"
	}
	return filepath.Join(home, ".verbscope", "cache")
}

// ValidateFormats checks requested output formats against KnownFormats.
// Called before any input file is read.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		known := false
		for _, k := range KnownFormats {
			if f == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown output format %q (supported: json, csv, txt)", f)
		}
	}
	if len(formats) == 0 {
		return fmt.Errorf("no output formats requested")
	}
	return nil
}
