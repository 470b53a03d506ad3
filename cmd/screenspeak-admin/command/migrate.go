package command

import (
	"screenspeak/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db, a.logger); err != nil {
				return err
			}
			cmd.Println("schema is up to date")
			return nil
		},
	}
}
