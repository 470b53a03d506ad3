package dto

// SearchRequest binds the query string; genre and situation may repeat.
type SearchRequest struct {
	Query      string   `form:"query"`
	Genres     []string `form:"genre"`
	Situations []string `form:"situation"`
	RatingFrom string   `form:"rating_from"`
}

type SearchResponse struct {
	Query      string         `json:"query"`
	Genres     []string       `json:"selected_genres"`
	Situations []string       `json:"selected_situations"`
	RatingFrom *float64       `json:"rating_from,omitempty"`
	Movies     []MovieSummary `json:"movies"`
	Count      int            `json:"count"`
}
