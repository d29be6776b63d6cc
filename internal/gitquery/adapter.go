// Package gitquery answers history questions by shelling out to git. Every
// command runs with a deadline; parsing is split from execution so the
// format handling is testable without a repository.
package gitquery

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"cix/internal/errors"
	"cix/internal/logging"
)

// logFormat produces one pipe-delimited line per commit.
const logFormat = "%H|%an|%aI|%s"

// Adapter runs git commands against a single repository.
type Adapter struct {
	repoPath string
	timeout  time.Duration
	logger   *logging.Logger
}

// NewAdapter creates an adapter for the repository at repoPath.
func NewAdapter(repoPath string, timeout time.Duration, logger *logging.Logger) *Adapter {
	return &Adapter{
		repoPath: repoPath,
		timeout:  timeout,
		logger:   logger,
	}
}

// Available reports whether repoPath is inside a git work tree.
func (a *Adapter) Available(ctx context.Context) bool {
	out, err := a.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// run executes git with the adapter's timeout and classifies failures.
func (a *Adapter) run(ctx context.Context, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "git", args...)
	cmd.Dir = a.repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	a.logger.Debug("Git command finished", map[string]interface{}{
		"args": strings.Join(args, " "),
		"ms":   elapsed.Milliseconds(),
		"ok":   err == nil,
	})

	if err != nil {
		if cctx.Err() == context.DeadlineExceeded {
			return "", errors.New(errors.Timeout, "git command timed out", err).
				WithDetails(map[string]interface{}{
					"args":      strings.Join(args, " "),
					"timeoutMs": a.timeout.Milliseconds(),
				})
		}
		if _, ok := err.(*exec.ExitError); !ok {
			// Binary missing or not executable
			return "", errors.New(errors.GitUnavailable, "git is not available", err)
		}
		return "", errors.New(errors.GitCommandFailed, "git command failed", err).
			WithDetails(map[string]interface{}{
				"args":   strings.Join(args, " "),
				"stderr": strings.TrimSpace(stderr.String()),
			})
	}

	return stdout.String(), nil
}
