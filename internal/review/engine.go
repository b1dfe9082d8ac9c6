package review

import (
	"context"
	"strings"
	"time"

	"github.com/dshills/branchreview/internal/filter"
	"github.com/dshills/branchreview/internal/providers"
	"github.com/dshills/branchreview/internal/redact"
	"github.com/rs/zerolog"
)

// DiffSource lists the files changed on a branch and fetches their diffs.
// *gitctx.Collector satisfies it.
type DiffSource interface {
	ListChangedFiles(ctx context.Context) ([]string, error)
	FetchAllDiffs(ctx context.Context, files []string) ([]string, error)
}

// Options is the immutable per-run configuration of an Engine.
type Options struct {
	Request Request
	// Redact scrubs likely secrets from the diff before it is prompted.
	Redact bool
}

// Engine drives filter, collect, and generate for a single review.
type Engine struct {
	source DiffSource
	gen    providers.Generator
	opts   Options
	log    zerolog.Logger
}

// NewEngine creates an Engine. Empty Base and Model in opts.Request fall back
// to DefaultBase and DefaultModel.
func NewEngine(source DiffSource, gen providers.Generator, opts Options, log zerolog.Logger) *Engine {
	if opts.Request.Base == "" {
		opts.Request.Base = DefaultBase
	}
	if opts.Request.Model == "" {
		opts.Request.Model = DefaultModel
	}
	return &Engine{source: source, gen: gen, opts: opts, log: log}
}

// Run executes the review. It either returns a complete Result or a *Error;
// partial results are never returned.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	startTime := time.Now()
	req := e.opts.Request
	result := Result{
		Files: []string{},
		Inputs: InputInfo{
			Repo:   req.RepoPath,
			Base:   req.Base,
			Branch: req.Branch,
			Model:  req.Model,
		},
	}

	changed, err := e.source.ListChangedFiles(ctx)
	if err != nil {
		return Result{}, e.fail(err)
	}

	files := filter.Apply(changed)
	result.Inputs.Excluded = excluded(changed, files)
	e.log.Info().
		Int("changed", len(changed)).
		Int("reviewed", len(files)).
		Strs("excluded", result.Inputs.Excluded).
		Msg("filtered changed files")

	if len(files) == 0 {
		result.Review = NoRelevantFiles
		result.Timing = Timing{GitMs: msSince(startTime), TotalMs: msSince(startTime)}
		return result, nil
	}
	result.Files = files

	diffs, err := e.source.FetchAllDiffs(ctx, files)
	if err != nil {
		return Result{}, e.fail(err)
	}
	result.Timing.GitMs = msSince(startTime)

	combined := CombineDiffs(diffs)
	if strings.TrimSpace(combined) == "" {
		result.Review = NoChanges
		result.Timing.TotalMs = msSince(startTime)
		return result, nil
	}

	if e.opts.Redact {
		if kinds := redact.Scan(combined); len(kinds) > 0 {
			e.log.Warn().Strs("kinds", kinds).Msg("redacting secrets from diff")
		}
		combined = redact.Secrets(combined)
	}

	llmStart := time.Now()
	text, err := e.Generate(ctx, combined)
	if err != nil {
		return Result{}, e.fail(err)
	}
	result.Review = text
	result.Timing.LLMMs = msSince(llmStart)
	result.Timing.TotalMs = msSince(startTime)

	return result, nil
}

// Generate prompts the model with the combined diff. Transport failures are
// not errors: they come back as review text starting with
// GenerationErrorPrefix. A non-success HTTP status or a cancelled context is
// returned as an error.
func (e *Engine) Generate(ctx context.Context, diff string) (string, error) {
	e.log.Info().
		Str("provider", e.gen.Name()).
		Str("model", e.opts.Request.Model).
		Int("diffBytes", len(diff)).
		Msg("requesting review")

	resp, err := e.gen.Generate(ctx, providers.GenerateRequest{Prompt: BuildPrompt(diff)})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if providers.IsTransportError(err) {
			e.log.Warn().Err(err).Msg("generation service unreachable")
			return GenerationErrorPrefix + err.Error(), nil
		}
		return "", err
	}
	return resp.Text, nil
}

func (e *Engine) fail(err error) error {
	e.log.Error().Err(err).Msg("review failed")
	return &Error{Err: err}
}

func excluded(all, kept []string) []string {
	if len(all) == len(kept) {
		return nil
	}
	keep := make(map[string]bool, len(kept))
	for _, f := range kept {
		keep[f] = true
	}
	var out []string
	for _, f := range all {
		if !keep[f] {
			out = append(out, f)
		}
	}
	return out
}

func msSince(t time.Time) int64 {
	return time.Since(t).Milliseconds()
}
