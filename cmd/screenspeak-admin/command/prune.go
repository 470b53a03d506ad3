package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"screenspeak/internal/http-api/repository"

	"github.com/spf13/cobra"
)

func newPruneTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune-tokens",
		Short: "Delete expired and revoked refresh tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			return pruneTokens(cmd.Context(), cmd.OutOrStdout(), repository.NewRefreshTokenRepository(db), time.Now())
		},
	}
}

func pruneTokens(ctx context.Context, out io.Writer, tokens repository.RefreshTokenRepository, now time.Time) error {
	n, err := tokens.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "refresh tokens removed: %d\n", n)
	return nil
}
