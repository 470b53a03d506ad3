package models

import "time"

type ReactionType string

const (
	ReactionGood ReactionType = "good"
	ReactionBad  ReactionType = "bad"
)

func (t ReactionType) Valid() bool {
	return t == ReactionGood || t == ReactionBad
}

// ReviewReaction is a user's current vote on a review, at most one per pair.
type ReviewReaction struct {
	ID         int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string       `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_user_review"`
	ReviewID   int64        `json:"review_id" gorm:"not null;index;uniqueIndex:idx_reaction_user_review"`
	RatingType ReactionType `json:"rating_type" gorm:"column:rating_type;size:16;not null"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Review *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (ReviewReaction) TableName() string {
	return "review_reactions"
}

type VoteAction string

const (
	VoteCreated   VoteAction = "created"
	VoteUpdated   VoteAction = "updated"
	VoteRetracted VoteAction = "retracted"
)

// VoteChange describes what a vote does to the reaction row and the counters.
type VoteChange struct {
	Action    VoteAction
	Next      *ReactionType // nil when the reaction row goes away
	GoodDelta int
	BadDelta  int
}

// ApplyVote resolves a vote against the user's previous reaction (nil if none).
// Same type twice retracts; a different type switches.
func ApplyVote(prev *ReactionType, vote ReactionType) VoteChange {
	next := vote
	switch {
	case prev == nil:
		c := VoteChange{Action: VoteCreated, Next: &next}
		c.add(vote, 1)
		return c
	case *prev == vote:
		c := VoteChange{Action: VoteRetracted}
		c.add(vote, -1)
		return c
	default:
		c := VoteChange{Action: VoteUpdated, Next: &next}
		c.add(*prev, -1)
		c.add(vote, 1)
		return c
	}
}

func (c *VoteChange) add(t ReactionType, delta int) {
	if t == ReactionGood {
		c.GoodDelta += delta
	} else {
		c.BadDelta += delta
	}
}

// VoteOutcome is the counter state after a vote was applied.
type VoteOutcome struct {
	Action    VoteAction
	GoodCount int
	BadCount  int
}
