package git

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client interacts with Git repositories
type Client struct {
	logger *log.Logger
}

// NewClient creates a new Git client
func NewClient(logger *log.Logger) *Client {
	return &Client{logger: logger}
}

// ShowFile returns the content of a file at a given revision, e.g. the
// committed version a working copy is diffed against.
func (c *Client) ShowFile(ctx context.Context, dir, rev, path string) (string, error) {
	rel, err := c.relToRoot(ctx, dir, path)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "show", rev+":"+rel)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if strings.Contains(stderr, "exists on disk, but not in") ||
				strings.Contains(stderr, "does not exist in") {
				// Untracked at that revision; diff against an empty document.
				c.logger.Printf("Warning: %s not found at %s, diffing against empty file", rel, rev)
				return "", nil
			}
			return "", fmt.Errorf("git show %s:%s: %s", rev, rel, stderr)
		}
		return "", fmt.Errorf("git show failed: %w", err)
	}

	return string(output), nil
}

// relToRoot converts path to a repository-root-relative path, which is the
// form "git show REV:path" expects.
func (c *Client) relToRoot(ctx context.Context, dir, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", dir)
	}
	root := strings.TrimSpace(string(output))

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// IsValidRepo checks if a path is inside a valid Git repository
func IsValidRepo(path string) bool {
	for dir := path; ; dir = filepath.Dir(dir) {
		info, err := os.Stat(filepath.Join(dir, ".git"))
		if err == nil && info.IsDir() {
			return true
		}
		if filepath.Dir(dir) == dir {
			return false
		}
	}
}
