package command

// root.go defines the admin CLI root command and the connection it shares
// with every subcommand.

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"screenspeak/database"
	"screenspeak/internal/config"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app is filled in by the root PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

func (a *app) connect(ctx context.Context) (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.ConnectGorm(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// NewRootCommand wires the subcommands onto a fresh root.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "screenspeak-admin",
		Short: "screenspeak-admin - ScreenSpeak maintenance tool",
		Long: `screenspeak-admin runs maintenance tasks against the ScreenSpeak database:
- create or update the schema
- load hashtags and movies from a YAML seed file
- rebuild review good/bad counters from the reaction rows
- remove expired refresh tokens

Configuration is read from the environment and .env, like the API server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newSeedCmd(a))
	rootCmd.AddCommand(newRecountCmd(a))
	rootCmd.AddCommand(newPruneTokensCmd(a))

	return rootCmd
}

// Execute is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
