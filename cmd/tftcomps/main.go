package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var errUsage = errors.New("usage: tftcomps <player> <platform>")

// stageError labels a failure with the pipeline stage it came from
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string {
	return e.stage + ": " + e.err.Error()
}

func (e *stageError) Unwrap() error {
	return e.err
}

func inStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &stageError{stage: stage, err: err}
}

type options struct {
	jsonPath    string
	xlsxPath    string
	verbose     bool
	validateKey bool
	concurrency int
}

func newRootCmd(runner func(ctx context.Context, opts options, player, platform string) error) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "tftcomps <player> <platform>",
		Short: "Export every participant's composition from a player's latest TFT match",
		Long: `Looks up the player on the given platform (for example NA1, EUW1, KR),
fetches their most recent match and writes each participant's traits and units,
ordered by placement, to a JSON file and a spreadsheet.

Players may be given as a Riot ID ("Name#Tag") or a legacy summoner name.`,
		Args:          validateArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner(cmd.Context(), opts, args[0], args[1])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.jsonPath, "json", "", "JSON artifact path (default $OUTPUT_JSON or output.json)")
	flags.StringVar(&opts.xlsxPath, "xlsx", "", "spreadsheet artifact path (default $OUTPUT_XLSX or output.xlsx)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	flags.BoolVar(&opts.validateKey, "validate-key", false, "check RIOT_API_KEY against the platform status endpoint first")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "parallel participant lookups (default $RESOLVE_CONCURRENCY or 1)")

	return cmd
}

func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected 2 arguments, got %d", errUsage, len(args))
	}
	for _, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("%w: arguments must not be empty", errUsage)
		}
	}
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

func main() {
	ctx, stop := withSignals(context.Background(), os.Stderr, func() { os.Exit(130) })

	err := newRootCmd(run).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}
