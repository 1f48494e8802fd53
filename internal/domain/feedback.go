package domain

import (
	"context"
	"time"
)

const (
	MinFeedbackRating      = 1
	MaxFeedbackRating      = 5
	MaxFeedbackCommentSize = 2000
)

// Feedback is a user's rating of how helpful an analysis was.
type Feedback struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	DocumentID *string   `json:"document_id,omitempty"`
	AnalysisID *string   `json:"analysis_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks rating bounds and comment length.
func (f *Feedback) Validate() error {
	if f.Rating < MinFeedbackRating || f.Rating > MaxFeedbackRating {
		return &ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	if len(f.Comment) > MaxFeedbackCommentSize {
		return &ValidationError{Field: "comment", Message: "comment too long"}
	}
	return nil
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Feedback, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, ownerID string, fb *Feedback) (*Feedback, error)
	List(ctx context.Context, ownerID string) ([]*Feedback, error)
}
