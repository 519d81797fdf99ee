// Package pipeline runs a complete extraction: every manifest file is
// scanned and classified, then the merged entities are resolved into a model.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/extdoc-hq/extdoc/internal/config"
	"github.com/extdoc-hq/extdoc/internal/extract"
	"github.com/extdoc-hq/extdoc/internal/hierarchy"
	"github.com/extdoc-hq/extdoc/internal/links"
	"github.com/extdoc-hq/extdoc/internal/manifest"
	"github.com/extdoc-hq/extdoc/pkg/model"
)

// Options configures a Pipeline
type Options struct {
	// Workers bounds how many files are scanned at once. Values below 1 mean
	// sequential scanning.
	Workers int

	FunctionKeyword string
	Links           links.Options
	Hierarchy       hierarchy.Options

	// Metrics is optional
	Metrics *Metrics
}

// OptionsFromConfig maps a project config onto pipeline options
func OptionsFromConfig(cfg *config.ProjectConfig, workers int) Options {
	return Options{
		Workers:         workers,
		FunctionKeyword: cfg.Docs.FunctionKeyword,
		Links: links.Options{
			BaseURL:    cfg.Docs.LinkBase,
			Extension:  cfg.Docs.LinkExtension,
			ShortLimit: cfg.Docs.ShortLimit,
		},
		Hierarchy: hierarchy.Options{
			ComponentRoot:       cfg.Docs.ComponentRoot,
			InheritFromExcluded: cfg.Docs.InheritFromExcluded,
		},
	}
}

// FileError records a source file that could not be read completely
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Stats summarizes a run
type Stats struct {
	Files       int
	FailedFiles int
	Entities    int
	Classes     int
	Duration    time.Duration
}

// Result is the outcome of a run
type Result struct {
	RunID      string
	Model      *model.Model
	FileErrors []FileError
	Stats      Stats
}

// Pipeline runs extractions
type Pipeline struct {
	opts      Options
	extractor *extract.Extractor
	builder   *hierarchy.Builder
}

type fileResult struct {
	entities *extract.Result
	err      error
}

// New creates a pipeline
func New(opts Options) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		opts: opts,
		extractor: extract.New(extract.Options{
			FunctionKeyword: opts.FunctionKeyword,
			Links:           links.NewResolver(opts.Links),
		}),
		builder: hierarchy.NewBuilder(opts.Hierarchy),
	}
}

// Run processes every file in m. Unreadable files are logged and recorded in
// Result.FileErrors; whatever was scanned before the failure is kept. The
// hierarchy is resolved only once all files are done.
func (p *Pipeline) Run(ctx context.Context, m *manifest.Manifest) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()

	logger.Info().Int("files", len(m.Files)).Int("workers", p.opts.Workers).Msg("Starting extraction")

	results, err := p.scan(ctx, logger, m.Files)
	if err != nil {
		return nil, err
	}

	merged := extract.NewResult()
	var fileErrors []FileError
	for i, res := range results {
		merged.Merge(res.entities)
		if res.err != nil {
			fileErrors = append(fileErrors, FileError{File: m.Files[i], Err: res.err})
		}
	}

	resolved, err := p.builder.Build(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class hierarchy: %w", err)
	}

	stats := Stats{
		Files:       len(m.Files),
		FailedFiles: len(fileErrors),
		Entities:    merged.Count(),
		Classes:     len(resolved.Classes),
		Duration:    time.Since(start),
	}

	if p.opts.Metrics != nil {
		p.opts.Metrics.Runs.Inc()
		p.opts.Metrics.Classes.Set(float64(stats.Classes))
		p.opts.Metrics.RunDuration.Observe(stats.Duration.Seconds())
	}

	logger.Info().
		Int("classes", stats.Classes).
		Int("entities", stats.Entities).
		Int("failed_files", stats.FailedFiles).
		Dur("duration", stats.Duration).
		Msg("Extraction complete")

	return &Result{
		RunID:      runID,
		Model:      resolved,
		FileErrors: fileErrors,
		Stats:      stats,
	}, nil
}

// scan processes files with at most Workers in flight. Results are indexed
// by manifest position so merging keeps manifest order.
func (p *Pipeline) scan(ctx context.Context, logger zerolog.Logger, files []string) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			logger.Info().Str("file", file).Msg("Processing")
			entities, err := p.extractor.ProcessFile(file)
			if err != nil {
				logger.Error().Err(err).Str("file", file).Msg("Failed to read source file")
			}

			results[i] = fileResult{entities: entities, err: err}
			p.opts.Metrics.observeFile(results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction cancelled: %w", err)
	}
	return results, nil
}
