package model

import "time"

// Review is a customer rating of a stand
type Review struct {
	ID         int64     `json:"review_id"`
	StandID    int64     `json:"stand_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Title      *string   `json:"title"`
	Comment    *string   `json:"comment"`
	Likes      int       `json:"likes"`
	ReviewedAt time.Time `json:"reviewed_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateReviewRequest struct {
	StandID int64   `json:"stand_id" binding:"omitempty,gt=0"` // Taken from the path on /stands/:standId/reviews
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Title   *string `json:"title,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
