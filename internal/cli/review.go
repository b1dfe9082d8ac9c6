package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dshills/branchreview/internal/config"
	"github.com/dshills/branchreview/internal/filter"
	"github.com/dshills/branchreview/internal/gitctx"
	"github.com/dshills/branchreview/internal/logger"
	"github.com/dshills/branchreview/internal/output"
	"github.com/dshills/branchreview/internal/providers"
	"github.com/dshills/branchreview/internal/review"
	"github.com/spf13/cobra"
)

// Review flags
var (
	flagRepo        string
	flagBranch      string
	flagBase        string
	flagModel       string
	flagFormat      string
	flagOut         string
	flagRedact      bool
	flagConcurrency int
	flagLogLevel    string
	flagLogFormat   string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagRepo, "repo", "", "Path to the git repository (required, ~ is expanded)")
	cmd.Flags().StringVar(&flagBranch, "branch", "", "Branch or ref to review (required)")
	cmd.Flags().StringVar(&flagBase, "base", "", "Branch or ref to compare against (default \"main\")")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model passed to the generation service (default \"llama3.2\")")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Redact likely secrets from the diff before sending it")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Maximum concurrent git diff processes")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagRepo != "" {
		m["repo"] = flagRepo
	}
	if flagBranch != "" {
		m["branch"] = flagBranch
	}
	if flagBase != "" {
		m["base"] = flagBase
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagRedact {
		m["redact"] = "true"
	}
	if flagConcurrency > 0 {
		m["concurrency"] = fmt.Sprintf("%d", flagConcurrency)
	}
	if flagLogLevel != "" {
		m["log.level"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["log.format"] = flagLogFormat
	}
	return m
}

// printUsage writes the invocation synopsis, flags, and the fixed exclusion
// rules.
func printUsage(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "Usage:\n  %s\n\n", cmd.Root().Use)
	fmt.Fprintf(w, "Flags:\n%s\n", cmd.Flags().FlagUsages())
	fmt.Fprintln(w, "Excluded from review:")
	for _, line := range filter.Describe() {
		fmt.Fprintf(w, "  - %s\n", line)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return nil
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		var ce *config.ConfigurationError
		if errors.As(err, &ce) && len(ce.Missing) > 0 {
			printUsage(stderr, cmd)
		}
		exitCode = ExitFailure
		return nil
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, stderr)

	repo, err := gitctx.ExpandHome(cfg.Repo)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return nil
	}

	gen, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return nil
	}

	collector := gitctx.NewCollector(repo, cfg.Base, cfg.Branch, log)
	collector.Concurrency = cfg.Concurrency

	engine := review.NewEngine(collector, gen, review.Options{
		Request: review.Request{
			RepoPath: repo,
			Branch:   cfg.Branch,
			Base:     cfg.Base,
			Model:    cfg.Model,
		},
		Redact: cfg.Redact,
	}, log)

	result, err := engine.Run(cmd.Context())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitFailure
		return nil
	}

	if err := output.WriteResult(result, cfg.Format, flagOut, cmd.OutOrStdout()); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		exitCode = ExitFailure
		return nil
	}
	return nil
}

func init() {
	addReviewFlags(rootCmd)
	defaultUsage := rootCmd.UsageFunc()
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		if cmd != rootCmd {
			return defaultUsage(cmd)
		}
		printUsage(cmd.OutOrStderr(), cmd)
		return nil
	})
}
