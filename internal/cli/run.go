package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ojocivico/planscore/internal/acquire"
	"github.com/ojocivico/planscore/internal/cache"
	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/compliance"
	"github.com/ojocivico/planscore/internal/llm"
	"github.com/ojocivico/planscore/internal/model"
	"github.com/ojocivico/planscore/internal/pipeline"
	"github.com/ojocivico/planscore/internal/rank"
	"github.com/ojocivico/planscore/internal/report"
	"github.com/ojocivico/planscore/internal/worker"
)

var (
	candidatesFile string
	historicalFile string
	preTextDir     string
	catalogPath    string
	outputDir      string
	workers        int
	runTimeout     time.Duration
	noCache        bool
	cacheDir       string
	noOCR          bool
	ocrLangs       string
	ocrDPI         int
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <plans-dir>",
	Short: "Score every platform PDF in a directory",
	Long: `Run the full pipeline over a directory of platform PDFs:
- Extract text (pre-extracted files, cache, then the PDF itself, with OCR fallback)
- Classify paragraphs into methodology pillars and extract claims
- Score each claim on existence, timing, mechanism and funding
- Apply bonuses, penalties and informative flags from the catalog
- Write the run artifacts and print the ranking

Example:
  planscore run ./planes
  planscore run ./planes --workers 8 --out ./data
  planscore run ./planes --candidates ./data/candidates.json --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&candidatesFile, "candidates", "./data/candidates.json", "curated candidate metadata (read-only)")
	runCmd.Flags().StringVar(&historicalFile, "historical", "", "verified historical-record file (optional)")
	runCmd.Flags().StringVar(&preTextDir, "pretext-dir", "", "directory of pre-extracted <id>_ocr_text.txt files")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "", "methodology catalog file (default: embedded catalog)")
	runCmd.Flags().StringVar(&outputDir, "out", "./data", "output directory for run artifacts")
	runCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of documents processed in parallel")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "total timeout for the batch")

	// Cache flags
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extraction cache (force re-extraction)")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", "./.planscore-cache", "extraction cache directory")

	// OCR flags
	runCmd.Flags().BoolVar(&noOCR, "no-ocr", false, "disable OCR fallback for scanned or corrupt pages")
	runCmd.Flags().StringVar(&ocrLangs, "ocr-langs", "spa+eng", "Tesseract language string")
	runCmd.Flags().IntVar(&ocrDPI, "ocr-dpi", 300, "render DPI for OCR rasterization")

	// LLM flags
	runCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation (never affects scores)")
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Input.PlansDir = args[0]
	cfg.Input.CandidatesFile = candidatesFile
	cfg.Input.HistoricalFile = historicalFile
	cfg.Input.PreTextDir = preTextDir
	cfg.Catalog.Path = catalogPath
	cfg.OCR.Enabled = !noOCR
	cfg.OCR.Languages = ocrLangs
	cfg.OCR.DPI = ocrDPI
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.Workers = workers
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// The catalog is the methodology: refuse to run on a broken one.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Planscore Batch Run\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Plans dir:    %s\n", cfg.Input.PlansDir)
	fmt.Fprintf(os.Stderr, "  Catalog:      v%s\n", cat.Version)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Extraction cache
	var docs *cache.DocumentCache
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		docs = cache.NewDocumentCache(layered, cfg.Cache.DiskTTL)
	}

	// OCR is best effort: a host without Tesseract still scores
	// text-layer PDFs.
	var ocr acquire.OCREngine
	if cfg.OCR.Enabled {
		engine, err := acquire.NewTesseractEngine(cfg.OCR.Languages, cfg.OCR.PoolSize)
		if err != nil {
			logger.Warn("OCR unavailable, scanned pages will be skipped", zap.Error(err))
		} else {
			ocr = engine
			defer func() { _ = engine.Close() }()
		}
	}

	candidates, err := pipeline.LoadCandidates(cfg.Input.CandidatesFile)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}
	historical, err := compliance.LoadHistoricalRecords(cfg.Input.HistoricalFile)
	if err != nil {
		return fmt.Errorf("load historical records: %w", err)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}

	p := pipeline.New(pipeline.Options{
		Catalog:    cat,
		Acquirer:   acquire.New(cat, cfg, docs, ocr, logger),
		Summarizer: llm.NewSummarizer(provider),
		Candidates: candidates,
		Historical: historical,
		Logger:     logger,
	})

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Processing plans with %d workers...\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	results, err := processor.ProcessDir(ctx, cfg.Input.PlansDir)
	if err != nil {
		return fmt.Errorf("process plans: %w", err)
	}

	var (
		claims   []model.Claim
		scores   []model.CandidateScore
		analyses []model.DetailedAnalysis
		failures int
	)
	for _, result := range results {
		if result.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}
		claims = append(claims, result.Result.Claims...)
		scores = append(scores, result.Result.Score)
		analyses = append(analyses, result.Result.Analysis)
	}

	if len(scores) == 0 {
		return fmt.Errorf("no plans processed successfully (%d failures)", failures)
	}

	ranking := rank.Build(scores, cat)

	writer, err := report.NewWriter(cfg.Output.Dir)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(cat, claims, scores, ranking, analyses); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "✓ Processed %d plans (%d failed), %d claims\n", len(scores), failures, len(claims))
	fmt.Fprintf(os.Stderr, "✓ Artifacts written to %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "\n")

	report.PrintRanking(os.Stdout, ranking, model.MetricOverall, analyses)

	if failures > 0 {
		return fmt.Errorf("%d of %d plans failed", failures, len(results))
	}
	return nil
}

// newLogger builds the console logger shared by the pipeline stages.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}
