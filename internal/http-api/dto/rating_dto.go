package dto

import (
	"encoding/json"
	"strconv"
)

// NoRating is reported in place of an average when a movie has no reviews.
const NoRating = "no rating"

// AverageRating marshals as a number with one decimal, or as NoRating.
type AverageRating struct {
	Value float64
	Valid bool
}

func NewAverageRating(value float64, ok bool) AverageRating {
	return AverageRating{Value: value, Valid: ok}
}

func (a AverageRating) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return json.Marshal(NoRating)
	}
	return []byte(strconv.FormatFloat(a.Value, 'f', 1, 64)), nil
}

func (a *AverageRating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AverageRating{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = AverageRating{Value: v, Valid: true}
	return nil
}

func (a AverageRating) String() string {
	if !a.Valid {
		return NoRating
	}
	return strconv.FormatFloat(a.Value, 'f', 1, 64)
}
