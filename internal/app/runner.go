package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/juparave/linediff/internal/config"
	"github.com/juparave/linediff/internal/diff"
	"github.com/juparave/linediff/internal/domain"
	"github.com/juparave/linediff/internal/git"
	"github.com/juparave/linediff/internal/history"
	"github.com/juparave/linediff/internal/render"
	"github.com/juparave/linediff/internal/watch"
)

// Inputs identifies the two documents to diff. NewPath empty means git
// mode: OldPath's committed version at GitRev against its working copy.
// A path of "-" reads that side from stdin (at most one side).
type Inputs struct {
	OldPath string
	NewPath string
	GitRev  string
}

// Runner orchestrates a diff run from input loading to rendered output
type Runner struct {
	config *config.Config
	logger *log.Logger
	git    *git.Client
	out    io.Writer
	stdin  io.Reader
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config) *Runner {
	logger := log.New(os.Stderr, "[linediff] ", log.LstdFlags)

	return &Runner{
		config: cfg,
		logger: logger,
		git:    git.NewClient(logger),
		out:    os.Stdout,
		stdin:  os.Stdin,
	}
}

// Run executes a single diff: load both sides, compute, render, and record
// the run in history when enabled.
func (r *Runner) Run(ctx context.Context, in Inputs) error {
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	script, names, err := r.compute(ctx, in)
	if err != nil {
		return err
	}

	rendered := r.render(script, names)
	fmt.Fprintln(r.out, rendered)

	r.log("%d insertions, %d deletions, %d unchanged",
		script.InsertCount(), script.DeleteCount(), script.EqualCount())

	if r.config.History.Enabled {
		if err := r.record(ctx, script, names); err != nil {
			// History is a convenience; a failed save shouldn't fail the diff.
			r.logger.Printf("Warning: failed to record run: %v", err)
		}
	}

	return nil
}

// Watch re-runs the diff whenever one of the input files changes. History
// recording is skipped in watch mode so edit bursts don't flood the store.
func (r *Runner) Watch(ctx context.Context, in Inputs) error {
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files := []string{in.OldPath}
	if in.NewPath != "" {
		files = append(files, in.NewPath)
	}
	for _, f := range files {
		if f == "-" {
			return fmt.Errorf("cannot watch stdin")
		}
	}

	w := watch.New(r.logger)
	return w.Watch(ctx, files, func() error {
		script, names, err := r.compute(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.render(script, names))
		return nil
	})
}

// sideNames are the display names of the two sides of a diff
type sideNames struct {
	old string
	new string
}

// compute loads both sides of the diff and runs the engine over them.
func (r *Runner) compute(ctx context.Context, in Inputs) (domain.Script, sideNames, error) {
	var oldText, newText string
	var names sideNames
	var err error

	if in.NewPath == "" {
		// Git mode: committed version vs working copy.
		rev := in.GitRev
		if rev == "" {
			rev = "HEAD"
		}
		dir, err := filepath.Abs(filepath.Dir(in.OldPath))
		if err != nil {
			return nil, names, err
		}
		if !git.IsValidRepo(dir) {
			return nil, names, fmt.Errorf("%s is not inside a git repository", in.OldPath)
		}

		r.log("Loading %s:%s...", rev, in.OldPath)
		oldText, err = r.git.ShowFile(ctx, dir, rev, in.OldPath)
		if err != nil {
			return nil, names, err
		}
		newText, err = r.readInput(in.OldPath)
		if err != nil {
			return nil, names, err
		}
		names = sideNames{old: rev + ":" + in.OldPath, new: in.OldPath}
	} else {
		if in.OldPath == "-" && in.NewPath == "-" {
			return nil, names, fmt.Errorf("at most one side can read from stdin")
		}
		oldText, err = r.readInput(in.OldPath)
		if err != nil {
			return nil, names, err
		}
		newText, err = r.readInput(in.NewPath)
		if err != nil {
			return nil, names, err
		}
		names = sideNames{old: in.OldPath, new: in.NewPath}
	}

	if err := r.checkSize(names.old, oldText); err != nil {
		return nil, names, err
	}
	if err := r.checkSize(names.new, newText); err != nil {
		return nil, names, err
	}

	r.log("Computing diff...")
	start := time.Now()
	script := diff.Compute(oldText, newText)
	r.log("Diff computed in %s", time.Since(start).Round(time.Millisecond))

	return script, names, nil
}

// readInput reads one side of the diff from a file, or from stdin for "-".
func (r *Runner) readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// checkSize enforces the configured per-side line limit. The engine is a
// quadratic dynamic program, so oversized inputs are refused here rather
// than left to crawl.
func (r *Runner) checkSize(name, text string) error {
	max := r.config.Limits.MaxLines
	if max <= 0 {
		return nil
	}
	if n := len(domain.SplitLines(text)); n > max {
		return fmt.Errorf("%s has %d lines, above the limit of %d; raise limits.max_lines to diff it anyway", name, n, max)
	}
	return nil
}

// render applies the configured output format to the script.
func (r *Runner) render(script domain.Script, names sideNames) string {
	switch r.config.Render.Format {
	case config.FormatScript:
		return render.Script(script)
	default:
		return render.Unified(script, names.old, names.new, r.config.Render.Context, r.config.Render.Color)
	}
}

// record saves the run to the history store.
func (r *Runner) record(ctx context.Context, script domain.Script, names sideNames) error {
	store, err := history.Open(ctx, r.config.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save(ctx, history.Entry{
		OldName:  names.old,
		NewName:  names.new,
		Inserts:  script.InsertCount(),
		Deletes:  script.DeleteCount(),
		Equals:   script.EqualCount(),
		Rendered: render.Unified(script, names.old, names.new, r.config.Render.Context, false),
	})
	if err != nil {
		return err
	}

	r.log("Run saved to history as #%d", id)
	return nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.config.Verbose {
		r.logger.Printf(format, args...)
	}
}
