package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"

	"gopkg.in/yaml.v3"
)

// File is the seed document: hashtags by category plus a movie catalogue.
type File struct {
	Hashtags struct {
		Genres     []string `yaml:"genres"`
		Situations []string `yaml:"situations"`
	} `yaml:"hashtags"`
	Movies []Movie `yaml:"movies"`
}

type Movie struct {
	Title       string  `yaml:"title"`
	Plot        string  `yaml:"plot"`
	Director    string  `yaml:"director"`
	Cast        string  `yaml:"cast"`
	ReleaseYear int     `yaml:"release_year"`
	Thumbnail   *string `yaml:"thumbnail"`
}

// Result counts what Apply changed.
type Result struct {
	Hashtags      int
	MoviesCreated int
	MoviesSkipped int
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	var errs []error
	for i, m := range f.Movies {
		if strings.TrimSpace(m.Title) == "" {
			errs = append(errs, fmt.Errorf("movies[%d]: title is required", i))
		}
		if m.ReleaseYear < 1900 {
			errs = append(errs, fmt.Errorf("movies[%d] %q: release_year %d is before 1900", i, m.Title, m.ReleaseYear))
		}
	}
	return errors.Join(errs...)
}

// HashtagModels flattens both categories, dropping blanks.
func (f *File) HashtagModels() []models.Hashtag {
	var tags []models.Hashtag
	add := func(labels []string, c models.HashtagCategory) {
		for _, l := range labels {
			if l = strings.TrimSpace(l); l != "" {
				tags = append(tags, models.Hashtag{Label: l, Category: c})
			}
		}
	}
	add(f.Hashtags.Genres, models.CategoryGenre)
	add(f.Hashtags.Situations, models.CategorySituation)
	return tags
}

// Apply upserts the hashtags and creates movies whose title is not taken
// yet, so running it twice is harmless.
func (f *File) Apply(ctx context.Context, hashtags repository.HashtagRepository, movies repository.MovieRepository) (Result, error) {
	var res Result

	tags := f.HashtagModels()
	if len(tags) > 0 {
		if err := hashtags.Upsert(ctx, tags); err != nil {
			return res, err
		}
		res.Hashtags = len(tags)
	}

	for _, m := range f.Movies {
		title := strings.TrimSpace(m.Title)
		exists, err := movies.ExistsByTitle(ctx, title, 0)
		if err != nil {
			return res, err
		}
		if exists {
			res.MoviesSkipped++
			continue
		}
		movie := &models.Movie{
			Title:       title,
			Plot:        m.Plot,
			Director:    m.Director,
			Cast:        m.Cast,
			ReleaseYear: m.ReleaseYear,
			Thumbnail:   m.Thumbnail,
		}
		if err := movies.Create(ctx, movie); err != nil {
			return res, fmt.Errorf("seed movie %q: %w", title, err)
		}
		res.MoviesCreated++
	}
	return res, nil
}
