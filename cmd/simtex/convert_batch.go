package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	simtex "github.com/alnah/go-simtex"
	"github.com/alnah/go-simtex/internal/config"
)

// maxWorkers bounds --workers.
const maxWorkers = 32

// ErrInvalidWorkerCount is returned for --workers outside 0..maxWorkers.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// noteRunner converts one note. Implemented by convertJob; tests use fakes.
type noteRunner interface {
	Run(ctx context.Context, inPath string) ConversionResult
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath    string
	OutputPath   string
	PDFPath      string // empty unless built
	AssetsCopied int
	Err          error
	Duration     time.Duration
}

// convertJob converts a note, then builds and views it when requested.
// A Converter holds no per-conversion state, so one job serves all workers.
type convertJob struct {
	conv    *simtex.Converter
	builder *simtex.Builder // nil unless --build or --build-view
	title   string
	view    bool
	log     zerolog.Logger
}

// newConvertJob creates the converter and, when building, the builder.
func newConvertJob(cfg *config.Config, f *convertFlags, env *Environment, log zerolog.Logger) (*convertJob, error) {
	loader, err := simtex.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}

	conv, err := simtex.NewConverter(cfg.Rules, cfg.Doc(),
		simtex.WithLogger(log),
		simtex.WithAssetLoader(loader),
		simtex.WithAssetCopy(cfg.Output.CopyAssets),
		simtex.WithLanguageNormalization(cfg.Code.NormalizeLanguage),
		simtex.WithNow(env.Now),
	)
	if err != nil {
		return nil, err
	}

	job := &convertJob{
		conv:  conv,
		title: f.document.title,
		view:  f.build.view,
		log:   log,
	}

	if f.build.build || f.build.view {
		timeout, err := cfg.BuildTimeout()
		if err != nil {
			return nil, err
		}
		job.builder = simtex.NewBuilder(cfg.Build.Compiler,
			simtex.WithBuildArgs(cfg.Build.Args...),
			simtex.WithViewer(cfg.Build.Viewer),
			simtex.WithBuildTimeout(timeout),
			simtex.WithBuildLogger(log),
		)
	}

	return job, nil
}

// Run converts inPath and optionally builds and views the result.
func (j *convertJob) Run(ctx context.Context, inPath string) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{InputPath: inPath}
	defer func() { result.Duration = time.Since(start) }()

	res, err := j.conv.Convert(inPath, j.title)
	if err != nil {
		result.Err = err
		return result
	}
	result.OutputPath = res.OutputPath
	result.AssetsCopied = res.AssetsCopied

	if j.builder == nil {
		return result
	}

	pdf, err := j.builder.Build(ctx, res.OutputPath)
	if err != nil {
		result.Err = err
		return result
	}
	result.PDFPath = pdf

	if j.view {
		if err := j.builder.View(ctx, pdf); err != nil {
			result.Err = err
		}
	}
	return result
}

// convertBatch converts files concurrently with up to workers goroutines.
// Results keep the order of files.
func convertBatch(ctx context.Context, runner noteRunner, files []string, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx],
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = runner.Run(ctx, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// resolveWorkers returns the worker count: --workers, then SIMTEX_WORKERS,
// then GOMAXPROCS, capped by the number of notes.
func resolveWorkers(flagValue, envValue, notes int) int {
	n := runtime.GOMAXPROCS(0)
	switch {
	case flagValue > 0:
		n = flagValue
	case envValue > 0:
		n = envValue
	}
	return max(min(n, maxWorkers, notes), 1)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// batchError reports failed conversions of a multi-note run. It unwraps to
// the first failure so the exit code reflects it.
type batchError struct {
	failed, total int
	first         error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversions failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// reportResults prints one line per note and returns the failure, if any.
// A single failed note returns its own error; several return a batchError
// after each failure has been printed.
func reportResults(results []ConversionResult, f commonFlags, env *Environment) error {
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	summary := countResults(results)
	var first error

	for _, r := range results {
		if r.Err != nil {
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if f.quiet {
			continue
		}

		out := r.OutputPath
		if r.PDFPath != "" {
			out = r.PDFPath
		}
		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, total: len(results), first: first}
	}
	return nil
}
