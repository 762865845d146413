package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/juparave/linediff/internal/app"
	"github.com/juparave/linediff/internal/config"
	"github.com/juparave/linediff/internal/history"
	"github.com/spf13/cobra"
)

var (
	version      = "0.1.0"
	cfgFile      string
	format       string
	contextLines int
	color        bool
	gitRev       string
	watchMode    bool
	noHistory    bool
	verbose      bool
	historyLimit int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "linediff OLD NEW",
		Short: "Line-level diff between two text files",
		Long: `linediff computes a minimal line-level diff between two texts and prints it
as a unified diff or a plain +/-/space edit script.

With two arguments it diffs the two files ("-" reads one side from stdin).
With a single argument it diffs the committed version of the file against
the working copy.`,
		Version: version,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ~/.config/linediff/config.yaml)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: unified or script")
	rootCmd.Flags().IntVarP(&contextLines, "context", "C", 0, "Unchanged lines shown around each change")
	rootCmd.Flags().BoolVar(&color, "color", false, "Force colored output")
	rootCmd.Flags().StringVar(&gitRev, "rev", "HEAD", "Revision to diff against in single-file mode")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-run the diff when an input file changes")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Don't record this run in history")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	historyCmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List recent diff runs, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistory,
	}
	historyCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ~/.config/linediff/config.yaml)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to list")
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := app.Inputs{OldPath: args[0], GitRev: gitRev}
	if len(args) == 2 {
		in.NewPath = args[1]
	}

	runner := app.NewRunner(cfg)
	if watchMode {
		return runner.Watch(cmd.Context(), in)
	}
	return runner.Run(cmd.Context(), in)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.Open(cmd.Context(), cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	// Show a single run.
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id: %s", args[0])
		}
		entry, err := store.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Println(entry.Rendered)
		return nil
	}

	entries, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDIFF\tCHANGES")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s -> %s\t+%d -%d\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.OldName, e.NewName, e.Inserts, e.Deletes)
	}
	return w.Flush()
}

// loadConfig loads the config file and applies CLI flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if format != "" {
		cfg.Render.Format = format
	}
	if cmd.Flags().Changed("context") {
		cfg.Render.Context = contextLines
	}
	if cmd.Flags().Changed("color") {
		cfg.Render.Color = color
	}
	if noHistory {
		cfg.History.Enabled = false
	}
	cfg.Verbose = verbose

	return cfg, nil
}
