package worker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ojocivico/planscore/internal/pipeline"
)

// Processor processes one platform PDF end to end.
type Processor interface {
	ProcessPlan(ctx context.Context, path string) (*pipeline.PlanResult, error)
}

// PlanJob is one document processing job.
type PlanJob struct {
	Path      string
	Processor Processor
}

// Execute runs the job.
func (j *PlanJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ProcessPlan(ctx, j.Path)
	return &PlanJobResult{
		Path:   j.Path,
		Result: result,
		Err:    err,
	}
}

// PlanJobResult is the outcome of one document job.
type PlanJobResult struct {
	Path   string
	Result *pipeline.PlanResult
	Err    error
}

// GetError returns the job error, if any.
func (r *PlanJobResult) GetError() error {
	return r.Err
}

// BatchProcessor runs a set of plans through the pipeline concurrently.
// Documents are independent, so failures stay per-document: one unreadable
// PDF never aborts the batch.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPlans processes the given PDF paths concurrently.
func (b *BatchProcessor) ProcessPlans(ctx context.Context, paths []string) []*PlanJobResult {
	if len(paths) == 0 {
		return []*PlanJobResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&PlanJob{Path: path, Processor: b.processor})
	}

	results := pool.Wait()

	planResults := make([]*PlanJobResult, len(results))
	for i, result := range results {
		planResults[i] = result.(*PlanJobResult)
	}
	// Pool completion order is nondeterministic; report in path order.
	sort.Slice(planResults, func(i, j int) bool {
		return planResults[i].Path < planResults[j].Path
	})
	return planResults
}

// ProcessDir discovers the PDFs in dir and processes them.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*PlanJobResult, error) {
	paths, err := ListPlans(dir)
	if err != nil {
		return nil, err
	}
	return b.ProcessPlans(ctx, paths), nil
}

// ListPlans returns the sorted PDF paths in dir.
func ListPlans(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
