package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/render"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/catalog"
)

// NewQuestionsCommand creates the questions command.
func NewQuestionsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the canned SQL questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render.Questions(cmd.OutOrStdout(), catalog.Default().Questions(), opts.format)
		},
	}
}
