package command

import (
	"screenspeak/database/seed"
	"screenspeak/internal/http-api/repository"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load hashtags and movies from a YAML file",
		Long: `Load hashtags and movies from a YAML file. Hashtags that already exist
and movies whose title is already registered are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.SeedFile
			}
			f, err := seed.Load(file)
			if err != nil {
				return err
			}

			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			res, err := f.Apply(cmd.Context(), repository.NewHashtagRepository(db), repository.NewMovieRepository(db))
			if err != nil {
				return err
			}
			cmd.Printf("hashtags: %d, movies created: %d, movies skipped: %d\n", res.Hashtags, res.MoviesCreated, res.MoviesSkipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file (default: SEED_FILE)")
	return cmd
}
