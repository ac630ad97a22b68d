package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/seed"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Seed      uint64
	Synthetic int
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <path>",
		Short: "Create a demo SQLite database",
		Long: `Create a SQLite database at path with the dashboard schema and a
deterministic demo dataset. An existing database is overwritten.

Example:
  tennis seed ./tennis.db
  TENNIS_DB_DRIVER=sqlite3 TENNIS_DB_NAME=./tennis.db tennis serve`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, err := seed.Seed(ctx, args[0],
				seed.WithSeed(opts.Seed),
				seed.WithSyntheticCompetitors(opts.Synthetic),
			)
			if err != nil {
				return err
			}
			logger.Get().Info(ctx, "demo database written",
				logger.String("path", args[0]),
				logger.Int("competitors", len(ds.Competitors)),
				logger.Int("rankings", len(ds.Rankings)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d competitors, %d rankings, %d competitions, %d venues\n",
				args[0], len(ds.Competitors), len(ds.Rankings), len(ds.Competitions), len(ds.Venues))
			return err
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", seed.DefaultSeed, "random seed for generated values")
	cmd.Flags().IntVar(&opts.Synthetic, "synthetic", 0, "extra generated competitors to append")

	return cmd
}
