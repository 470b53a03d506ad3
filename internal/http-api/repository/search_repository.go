package repository

import (
	"context"
	"fmt"
	"strings"

	"screenspeak/internal/http-api/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SearchFilter holds the optional search facets. Zero values disable a facet.
type SearchFilter struct {
	Query      string
	Genres     []string
	Situations []string
	RatingFrom *float64
}

type SearchRepository interface {
	Search(ctx context.Context, f SearchFilter) ([]models.MovieWithStats, error)
}

// searchRepository runs the faceted movie search on a plain sqlx connection.
type searchRepository struct {
	db *sqlx.DB
}

func NewSearchRepository(db *sqlx.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) Search(ctx context.Context, f SearchFilter) ([]models.MovieWithStats, error) {
	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	movies := []models.MovieWithStats{}
	if err := r.db.SelectContext(ctx, &movies, query, args...); err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return movies, nil
}

func buildSearchQuery(f SearchFilter) sq.SelectBuilder {
	b := sq.Select(
		"m.id", "m.title", "m.plot", "m.director", "m.cast_members",
		"m.release_year", "m.thumbnail", "m.created_at", "m.updated_at",
		"COALESCE((SELECT SUM(r.rating) FROM reviews r WHERE r.movie_id = m.id), 0)::float8 AS rating_total",
		"(SELECT COUNT(*) FROM reviews r WHERE r.movie_id = m.id) AS review_count",
		"(SELECT COUNT(*) FROM favorite_movies fm WHERE fm.movie_id = m.id) AS favorites_count",
	).
		From("movies m").
		PlaceholderFormat(sq.Dollar)

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"m.title": pattern},
			sq.ILike{"m.director": pattern},
			sq.ILike{"m.cast_members": pattern},
		})
	}
	if labels := nonEmpty(f.Genres); len(labels) > 0 {
		b = b.Where(hashtagExists(models.CategoryGenre, labels))
	}
	if labels := nonEmpty(f.Situations); len(labels) > 0 {
		b = b.Where(hashtagExists(models.CategorySituation, labels))
	}
	if f.RatingFrom != nil {
		b = b.Where(sq.Expr("EXISTS (SELECT 1 FROM reviews r WHERE r.movie_id = m.id AND r.rating >= ?)", *f.RatingFrom))
	}

	return b.OrderBy("m.title ASC", "m.id ASC")
}

// hashtagExists matches movies with at least one review tagged by one of the
// labels within the category.
func hashtagExists(category models.HashtagCategory, labels []string) sq.Sqlizer {
	return exists{sq.Select("1").
		From("reviews r").
		Join("review_hashtags rh ON rh.review_id = r.id").
		Join("hashtags h ON h.id = rh.hashtag_id").
		Where("r.movie_id = m.id").
		Where(sq.Eq{"h.category": string(category)}).
		Where(sq.Eq{"h.label": labels})}
}

type exists struct {
	sub sq.SelectBuilder
}

func (e exists) ToSql() (string, []interface{}, error) {
	sql, args, err := e.sub.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "EXISTS (" + sql + ")", args, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
