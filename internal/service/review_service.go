package service

import (
	"context"
	"errors"
	"fmt"

	"streetbite/internal/model"
	"streetbite/internal/repository"
)

var ErrReviewNotFound = errors.New("review not found")

const (
	minRating = 1
	maxRating = 5
)

// ReviewService defines operations for stand reviews
type ReviewService interface {
	CreateReview(ctx context.Context, actor model.Actor, req model.CreateReviewRequest) (*model.Review, error)
	GetReview(ctx context.Context, reviewID int64) (*model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListStandReviews(ctx context.Context, standID int64) ([]model.Review, error)
	UpdateReview(ctx context.Context, reviewID int64, actor model.Actor, req model.UpdateReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, reviewID int64, actor model.Actor) error
	LikeReview(ctx context.Context, reviewID int64) (*model.Review, error)
}

type reviewService struct {
	repo   repository.ReviewRepository
	stands repository.StandRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewRepository, stands repository.StandRepository) ReviewService {
	return &reviewService{repo: repo, stands: stands}
}

func validRating(rating int) bool {
	return rating >= minRating && rating <= maxRating
}

func (s *reviewService) requireStand(ctx context.Context, standID int64) error {
	stand, err := s.stands.FindByID(ctx, standID)
	if err != nil {
		return fmt.Errorf("failed to find stand for review: %w", err)
	}
	if stand == nil {
		return ErrStandNotFound
	}
	return nil
}

// CreateReview stores a review authored by actor
func (s *reviewService) CreateReview(ctx context.Context, actor model.Actor, req model.CreateReviewRequest) (*model.Review, error) {
	if req.StandID <= 0 {
		return nil, invalid("stand_id and rating are required")
	}
	if !validRating(req.Rating) {
		return nil, invalid(fmt.Sprintf("rating must be between %d and %d", minRating, maxRating))
	}
	if err := s.requireStand(ctx, req.StandID); err != nil {
		return nil, err
	}

	review := &model.Review{
		StandID: req.StandID,
		UserID:  actor.UserID,
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review in repo: %w", err)
	}
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID int64) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews from repo: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) ListStandReviews(ctx context.Context, standID int64) ([]model.Review, error) {
	if err := s.requireStand(ctx, standID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.FindByStand(ctx, standID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stand reviews from repo: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID int64, actor model.Actor, req model.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && review.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, invalid(fmt.Sprintf("rating must be between %d and %d", minRating, maxRating))
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = req.Title
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := s.repo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review in repo: %w", err)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64, actor model.Actor) error {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && review.UserID != actor.UserID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review in repo: %w", err)
	}
	return nil
}

// LikeReview adds one like and returns the updated review
func (s *reviewService) LikeReview(ctx context.Context, reviewID int64) (*model.Review, error) {
	likes, err := s.repo.IncrementLikes(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to like review in repo: %w", err)
	}

	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.Likes = likes
	return review, nil
}
