package dto

import "screenspeak/internal/http-api/models"

type HashtagResponse struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

func FromModelToHashtagResponse(h *models.Hashtag) HashtagResponse {
	return HashtagResponse{ID: h.ID, Label: h.Label, Category: string(h.Category)}
}

func FromModelsToHashtagResponses(tags []models.Hashtag) []HashtagResponse {
	out := make([]HashtagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, FromModelToHashtagResponse(&tags[i]))
	}
	return out
}

type DashboardResponse struct {
	Movies     []MovieSummary    `json:"movies"`
	Genres     []HashtagResponse `json:"genres"`
	Situations []HashtagResponse `json:"situations"`
}
