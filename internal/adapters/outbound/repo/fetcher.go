// Package repo acquires a working copy of a remote repository for a single
// extraction run.
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// FallbackBranch is tried when the requested branch does not exist.
const FallbackBranch = "main"

// Checkout is a shallow clone on local disk. Close removes it.
type Checkout struct {
	Dir    string
	URL    string
	Branch string
}

func (c *Checkout) Close() error {
	if c == nil || c.Dir == "" {
		return nil
	}
	return os.RemoveAll(c.Dir)
}

// Fetcher clones repositories into temporary directories.
type Fetcher struct {
	token    string
	tempDir  string
	maxTries uint
	interval time.Duration
	logger   *slog.Logger
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		maxTries: 3,
		interval: 500 * time.Millisecond,
		logger:   slog.Default(),
	}
}

// WithToken authenticates HTTPS clones with a personal access token.
func (f *Fetcher) WithToken(token string) *Fetcher {
	f.token = token
	return f
}

// WithTempDir sets the parent directory for checkouts. Empty uses os.TempDir.
func (f *Fetcher) WithTempDir(dir string) *Fetcher {
	f.tempDir = dir
	return f
}

// WithRetry sets the number of attempts per clone and the initial delay.
func (f *Fetcher) WithRetry(maxTries uint, interval time.Duration) *Fetcher {
	if maxTries > 0 {
		f.maxTries = maxTries
	}
	if interval > 0 {
		f.interval = interval
	}
	return f
}

func (f *Fetcher) WithLogger(logger *slog.Logger) *Fetcher {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Fetch shallow-clones url at branch. A missing branch falls back to main
// and then to the remote's default branch. Transient failures are retried.
func (f *Fetcher) Fetch(ctx context.Context, url, branch string) (*Checkout, error) {
	normalized, err := NormalizeURL(url)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, candidate := range branchCandidates(branch) {
		co, err := f.cloneBranch(ctx, normalized, candidate)
		if err == nil {
			return co, nil
		}
		if !isMissingBranch(err) {
			return nil, fmt.Errorf("cloning %s: %w", normalized, err)
		}
		f.logger.Warn("branch not found, trying fallback", "url", normalized, "branch", candidate)
		lastErr = err
	}
	return nil, fmt.Errorf("cloning %s: %w", normalized, lastErr)
}

func (f *Fetcher) cloneBranch(ctx context.Context, url, branch string) (*Checkout, error) {
	dir, err := os.MkdirTemp(f.tempDir, "docscan-")
	if err != nil {
		return nil, fmt.Errorf("creating checkout dir: %w", err)
	}

	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	if f.token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: f.token}
	}

	operation := func() (*git.Repository, error) {
		if err := resetDir(dir); err != nil {
			return nil, backoff.Permanent(err)
		}
		repo, err := git.PlainCloneContext(ctx, dir, false, opts)
		if err != nil && isPermanent(err) {
			return nil, backoff.Permanent(err)
		}
		return repo, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.interval
	repo, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(f.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			f.logger.Warn("clone failed, retrying", "url", url, "err", err, "next", next)
		}),
	)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	co := &Checkout{Dir: dir, URL: url, Branch: branch}
	if head, err := repo.Head(); err == nil {
		co.Branch = head.Name().Short()
	}
	return co, nil
}

// NormalizeURL accepts full URLs, local paths and GitHub "owner/repo"
// shorthand.
func NormalizeURL(url string) (string, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		return "", errors.New("repository url is empty")
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"),
		strings.HasPrefix(url, "file://"), strings.HasPrefix(url, "ssh://"),
		strings.HasPrefix(url, "git@"):
		return url, nil
	}
	if _, err := os.Stat(url); err == nil {
		return url, nil
	}
	if strings.Count(url, "/") == 1 && !strings.HasPrefix(url, "/") && !strings.HasSuffix(url, "/") {
		return "https://github.com/" + url, nil
	}
	return "", fmt.Errorf("invalid repository url %q", url)
}

// branchCandidates lists the branches to try in order. The empty name
// stands for the remote's default branch.
func branchCandidates(branch string) []string {
	branch = strings.TrimSpace(branch)
	out := make([]string, 0, 3)
	if branch != "" {
		out = append(out, branch)
	}
	if branch != FallbackBranch {
		out = append(out, FallbackBranch)
	}
	return append(out, "")
}

func isMissingBranch(err error) bool {
	return errors.Is(err, git.NoMatchingRefSpecError{}) || errors.Is(err, plumbing.ErrReferenceNotFound)
}

func isPermanent(err error) bool {
	return isMissingBranch(err) ||
		errors.Is(err, transport.ErrRepositoryNotFound) ||
		errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, transport.ErrEmptyRemoteRepository) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// resetDir empties dir so a retried clone starts clean.
func resetDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(dir, 0o755)
		}
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(dir + string(os.PathSeparator) + e.Name()); err != nil {
			return err
		}
	}
	return nil
}
