package model

import "time"

// Config is the runtime configuration for a batch run. The rule catalog is
// deliberately separate: it is versioned data, not runtime tuning.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Catalog     CatalogRef        `yaml:"catalog"`
	OCR         OCRConfig         `yaml:"ocr"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// InputConfig locates the batch inputs
type InputConfig struct {
	PlansDir       string `yaml:"plans_dir"`       // Directory of platform PDFs
	CandidatesFile string `yaml:"candidates_file"` // Curated candidate metadata (read-only)
	HistoricalFile string `yaml:"historical_file"` // Optional verified historical-record set
	PreTextDir     string `yaml:"pretext_dir"`     // Optional pre-extracted OCR text files
}

// CatalogRef points at the active rule catalog
type CatalogRef struct {
	Path string `yaml:"path"` // Empty means the embedded default catalog
}

// OCRConfig controls the OCR fallback rung
type OCRConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Languages string `yaml:"languages"` // Tesseract language string, e.g. "spa+eng"
	DPI       int    `yaml:"dpi"`       // Render DPI for rasterized pages
	PoolSize  int    `yaml:"pool_size"` // OCR clients kept for concurrent pages
}

// CacheConfig controls the layered extraction cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"` // Documents processed in parallel
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// LLMConfig configures the optional non-scoring prose summary
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns sensible defaults for a local batch run
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			PlansDir:       "./planes",
			CandidatesFile: "./data/candidates.json",
			HistoricalFile: "./data/historical_evidence.json",
			PreTextDir:     "./data",
		},
		OCR: OCRConfig{
			Enabled:   true,
			Languages: "spa+eng",
			DPI:       300,
			PoolSize:  2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "./.planscore-cache",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir: "./data",
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
