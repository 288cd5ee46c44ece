package repository

import (
	"context"
	"errors"
	"fmt"

	"streetbite/internal/model"

	"github.com/jackc/pgx/v5"
)

// ReviewRepository defines operations for review data
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id int64) (*model.Review, error)
	FindAll(ctx context.Context) ([]model.Review, error)
	FindByStand(ctx context.Context, standID int64) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	IncrementLikes(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db DBTX
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db DBTX) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, stand_id, user_id, rating, title, comment, likes, reviewed_at, updated_at`

func scanReview(row pgx.Row, rv *model.Review) error {
	return row.Scan(&rv.ID, &rv.StandID, &rv.UserID, &rv.Rating, &rv.Title, &rv.Comment, &rv.Likes, &rv.ReviewedAt, &rv.UpdatedAt)
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	sql := `INSERT INTO reviews (stand_id, user_id, rating, title, comment)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, likes, reviewed_at, updated_at`
	err := r.db.QueryRow(ctx, sql, rv.StandID, rv.UserID, rv.Rating, rv.Title, rv.Comment).
		Scan(&rv.ID, &rv.Likes, &rv.ReviewedAt, &rv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	rv := &model.Review{}
	err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id), rv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}
	return rv, nil
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY reviewed_at DESC`)
}

func (r *reviewRepository) FindByStand(ctx context.Context, standID int64) ([]model.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE stand_id = $1 ORDER BY reviewed_at DESC`, standID)
}

func (r *reviewRepository) list(ctx context.Context, sql string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}

// Update rewrites rating, title and comment and bumps updated_at
func (r *reviewRepository) Update(ctx context.Context, rv *model.Review) error {
	sql := `UPDATE reviews SET rating = $1, title = $2, comment = $3, updated_at = NOW()
            WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, rv.Rating, rv.Title, rv.Comment, rv.ID).Scan(&rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// IncrementLikes adds one like and returns the new total
func (r *reviewRepository) IncrementLikes(ctx context.Context, id int64) (int, error) {
	var likes int
	err := r.db.QueryRow(ctx, `UPDATE reviews SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to like review: %w", err)
	}
	return likes, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
