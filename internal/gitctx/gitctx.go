package gitctx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Runner executes a git subcommand inside dir and returns both output streams
// in full.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs the git binary as a child process.
type ExecRunner struct {
	// Binary defaults to "git" when empty.
	Binary string
}

func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// VcsError reports a git invocation that produced no usable output.
type VcsError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *VcsError) Error() string {
	msg := "git " + strings.Join(e.Args, " ")
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return msg + ": " + s
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": failed"
}

func (e *VcsError) Unwrap() error { return e.Err }

// Collector lists and diffs the files that differ between two refs of a
// local repository.
type Collector struct {
	RepoPath string
	Base     string
	Branch   string

	// Concurrency bounds the number of git processes FetchAllDiffs runs at
	// once. Zero or negative means twice the number of CPUs.
	Concurrency int

	runner Runner
	log    zerolog.Logger
}

// NewCollector creates a Collector backed by the git binary.
func NewCollector(repoPath, base, branch string, log zerolog.Logger) *Collector {
	return &Collector{
		RepoPath: repoPath,
		Base:     base,
		Branch:   branch,
		runner:   ExecRunner{},
		log:      log,
	}
}

// rangeSpec is the symmetric-difference range base...branch, i.e. the changes
// on branch since it forked from base.
func (c *Collector) rangeSpec() string {
	return c.Base + "..." + c.Branch
}

// ListChangedFiles returns the paths changed between base and branch in the
// order git lists them.
func (c *Collector) ListChangedFiles(ctx context.Context) ([]string, error) {
	out, err := c.git(ctx, "diff", "--name-only", c.rangeSpec())
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		files = append(files, strings.TrimSuffix(line, "\r"))
	}
	return files, nil
}

// FetchDiff returns the unified diff of a single file between base and branch.
func (c *Collector) FetchDiff(ctx context.Context, file string) (string, error) {
	return c.git(ctx, "diff", c.rangeSpec(), "--", file)
}

// FetchAllDiffs fetches the diff of every file concurrently. The i-th result
// is the diff of files[i] regardless of completion order. The first failure
// fails the whole batch; processes already running are left to finish.
func (c *Collector) FetchAllDiffs(ctx context.Context, files []string) ([]string, error) {
	diffs := make([]string, len(files))

	var g errgroup.Group
	g.SetLimit(c.concurrency())
	for i, file := range files {
		g.Go(func() error {
			d, err := c.FetchDiff(ctx, file)
			if err != nil {
				return fmt.Errorf("diff %s: %w", file, err)
			}
			diffs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return diffs, nil
}

func (c *Collector) concurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU() * 2
}

// git runs a git subcommand in the repository. Stderr output is only fatal
// when stdout is empty; git writes progress and warnings to stderr even on
// success.
func (c *Collector) git(ctx context.Context, args ...string) (string, error) {
	c.log.Info().Str("dir", c.RepoPath).Strs("args", args).Msg("running git")

	runner := c.runner
	if runner == nil {
		runner = ExecRunner{}
	}
	stdout, stderr, err := runner.Run(ctx, c.RepoPath, args...)

	noOutput := strings.TrimSpace(stdout) == ""
	if strings.TrimSpace(stderr) != "" {
		if noOutput {
			return "", &VcsError{Args: args, Stderr: stderr, Err: err}
		}
		c.log.Warn().Strs("args", args).Str("stderr", strings.TrimSpace(stderr)).Msg("git wrote to stderr")
	}
	if err != nil && noOutput {
		return "", &VcsError{Args: args, Err: err}
	}
	return stdout, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
