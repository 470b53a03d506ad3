package service

import (
	"context"
	"errors"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrInvalidVoteType = errors.New("vote type must be good or bad")

type VoteService interface {
	Vote(ctx context.Context, reviewID int64, userID, voteType string) (*dto.VoteResponse, error)
}

type voteService struct {
	reactionRepo repository.ReactionRepository
}

func NewVoteService(reactionRepo repository.ReactionRepository) VoteService {
	return &voteService{reactionRepo: reactionRepo}
}

// Vote toggles the user's reaction on a review: a first vote is recorded,
// repeating it retracts it and the opposite vote switches it.
func (s *voteService) Vote(ctx context.Context, reviewID int64, userID, voteType string) (*dto.VoteResponse, error) {
	vote := models.ReactionType(voteType)
	if !vote.Valid() {
		return nil, ErrInvalidVoteType
	}

	outcome, err := s.reactionRepo.Toggle(ctx, reviewID, userID, vote)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	resp := &dto.VoteResponse{
		Status:    voteStatus(outcome.Action),
		GoodCount: outcome.GoodCount,
		BadCount:  outcome.BadCount,
	}
	if outcome.Action != models.VoteRetracted {
		resp.Vote = &voteType
	}
	return resp, nil
}

// voteStatus maps a vote action to the status clients already understand:
// retracting and switching both answer "updated".
func voteStatus(action models.VoteAction) string {
	if action == models.VoteRetracted {
		return string(models.VoteUpdated)
	}
	return string(action)
}
