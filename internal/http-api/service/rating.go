package service

import (
	"context"
	"log/slog"
	"math"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"
)

// RatingCache stores per-movie rating aggregates between requests. Get returns
// the entry's version; Set must drop the write if an Invalidate has happened
// since that version was read.
type RatingCache interface {
	Get(ctx context.Context, movieID int64) (models.RatingStats, int64, bool, error)
	Set(ctx context.Context, movieID int64, stats models.RatingStats, version int64) error
	Invalidate(ctx context.Context, movieID int64) error
}

// RoundedAverage returns the mean rating rounded to one decimal, half away
// from zero. ok is false when there are no reviews.
//
// Ratings are multiples of 0.5, so the sum is an exact count of half steps
// and the rounding can be done in integers: 3.0 and 4.5 give 3.8, not 3.7.
func RoundedAverage(stats models.RatingStats) (float64, bool) {
	if stats.Count <= 0 {
		return 0, false
	}
	halves := int64(math.Round(stats.Total * 2))
	n := stats.Count
	// mean*10 = 5*halves/n; add one half before the floor division
	tenths := (10*halves + n) / (2 * n)
	return float64(tenths) / 10, true
}

func averageOf(stats models.RatingStats) dto.AverageRating {
	return dto.NewAverageRating(RoundedAverage(stats))
}

// ValidRating reports whether r is a multiple of 0.5 within the allowed range.
func ValidRating(r float64) bool {
	if r < models.MinRating || r > models.MaxRating {
		return false
	}
	return r*2 == math.Trunc(r*2)
}

func invalidateRating(ctx context.Context, cache RatingCache, movieID int64) {
	if err := cache.Invalidate(ctx, movieID); err != nil {
		slog.WarnContext(ctx, "rating cache invalidation failed", "movie_id", movieID, "error", err)
	}
}
