package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewCmd().ExecuteContext(ctx); err != nil {
		slog.Error("kalmantrack failed", "err", err)
		stop()
		os.Exit(1)
	}
}

// NewCmd returns the kalmantrack root command.
func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "kalmantrack [command] [flags]",
		Short:         "kalmantrack simulates tracking of a moving robot with Kalman filters",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every filter step")

	generateCmd := &cobra.Command{
		Use:   "generate [flags]",
		Short: "Generate ground truth of a scenario",
		RunE:  doGenerate,
	}
	generateCmd.Flags().StringP("scenario", "s", "all-back-forth", "`<Scenario>` to generate")
	generateCmd.Flags().StringP("out", "o", "", "`<Path>` of the generated file, defaults to <Scenario>.moments")

	runCmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Track a scenario with the multivariate filter",
		RunE:  doRun,
	}
	runCmd.Flags().StringP("config", "c", "", "`<Path>` to the scenario YAML config")
	runCmd.Flags().StringP("plot", "p", "", "`<Path>` of the plot to write (png, svg or pdf)")

	scalarCmd := &cobra.Command{
		Use:   "scalar [flags]",
		Short: "Track a scenario position with the univariate filter",
		RunE:  doScalar,
	}
	scalarCmd.Flags().StringP("config", "c", "", "`<Path>` to the scenario YAML config")

	rootCmd.AddCommand(
		generateCmd,
		runCmd,
		scalarCmd,
	)
	return rootCmd
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
