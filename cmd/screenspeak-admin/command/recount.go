package command

import (
	"context"
	"fmt"
	"io"

	"screenspeak/internal/http-api/repository"

	"github.com/spf13/cobra"
)

func newRecountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recount",
		Short: "Rebuild review good/bad counters from reactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			return recount(cmd.Context(), cmd.OutOrStdout(), repository.NewReviewRepository(db))
		},
	}
}

func recount(ctx context.Context, out io.Writer, reviews repository.ReviewRepository) error {
	n, err := reviews.RecountReactions(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "reviews updated: %d\n", n)
	return nil
}
