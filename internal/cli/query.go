package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/adapters/render"
	service "github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/app"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/catalog"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <label|number>",
		Short: "Run one canned SQL question",
		Long: `Run one canned SQL question against the configured store.

The question is selected by its full label or by its position in
"tennis questions".

Example:
  tennis query 11
  tennis query "11. Competitors ranked in the top 5" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := resolveLabel(catalog.Default().Questions(), args[0])
			if err != nil {
				return err
			}
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				res, err := svc.RunQuestion(ctx, label)
				if err != nil {
					return err
				}
				return render.Table(cmd.OutOrStdout(), res, opts.format)
			})
		},
	}
}

// resolveLabel accepts a label verbatim or a 1-based position.
func resolveLabel(labels []string, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return arg, nil
	}
	if n < 1 || n > len(labels) {
		return "", fmt.Errorf("%w: no question number %d", catalog.ErrUnknownQuestion, n)
	}
	return labels[n-1], nil
}
