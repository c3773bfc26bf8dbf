package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"chronostat/domain/core"
	"chronostat/internal/config"
	"chronostat/internal/container"
)

// globalOptions are the flags shared by every command
type globalOptions struct {
	envFile string
	trials  int
	seed    int64
	workers int
	run     string
	format  string
	out     string
	noColor bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "chronostat",
		Short: "Significance tests for the time and distance perception experiment",
		Long: `chronostat compares experimental conditions with permutation tests and
t-tests and renders the results as tables or documents.

Defaults come from the environment (PERMUTATION_TRIALS, PERMUTATION_SEED,
PERMUTATION_WORKERS, CONDITIONS, ...) and an optional .env file; flags win.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", ".env", "Environment file to load if present")
	pf.IntVar(&opts.trials, "trials", 0, "Permutation trials (default PERMUTATION_TRIALS or 10000)")
	pf.Int64Var(&opts.seed, "seed", 0, "Random seed (default PERMUTATION_SEED or 42)")
	pf.IntVar(&opts.workers, "workers", 0, "Permutation chunks run concurrently (default PERMUTATION_WORKERS)")
	pf.StringVar(&opts.run, "run", "", "Run name namespacing the random streams (default PERMUTATION_RUN)")
	pf.StringVar(&opts.format, "format", "text", "Output format: text, json, yaml, markdown, html, xlsx")
	pf.StringVarP(&opts.out, "out", "o", "", "Write output to a file instead of stdout")
	pf.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newPermuteCmd(opts),
		newTTestCmd(opts),
		newCompareCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// setup loads the environment and configuration, then applies flag overrides
func setup(cmd *cobra.Command, opts *globalOptions) (*container.Container, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", opts.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("trials") {
		cfg.Permutation.Trials = opts.trials
	}
	if flags.Changed("seed") {
		cfg.Permutation.Seed = opts.seed
	}
	if flags.Changed("workers") {
		cfg.Permutation.Workers = opts.workers
	}
	if flags.Changed("run") {
		id, err := core.ParseRunID(opts.run)
		if err != nil {
			return nil, err
		}
		cfg.Permutation.Run = id.String()
	}

	return container.New(cfg)
}
