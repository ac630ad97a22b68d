// Package cli implements the tennis dashboard command line: the HTTP server,
// canned questions, the summary and demo database seeding.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/render"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"
	Verbose    bool

	format render.Format
}

// NewRootCommand creates the root command for the dashboard CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tennis",
		Short: "Tennis data exploration dashboard",
		Long: `Explore a tennis database of competitors, rankings, competitions and venues.

Run "tennis serve" for the web dashboard, or query the store directly with
"tennis summary" and "tennis query".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(opts.Format)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --format", err)
			}
			opts.format = f
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return WrapExitError(ExitCommandError, "init logging", err)
			}
			if opts.Verbose {
				logger.SetLevel(slog.LevelDebug)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file (defaults to $TENNIS_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewQuestionsCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
