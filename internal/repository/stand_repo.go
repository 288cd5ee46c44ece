package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"streetbite/internal/model"

	"github.com/jackc/pgx/v5"
)

// StandRepository defines operations for stand data
type StandRepository interface {
	Create(ctx context.Context, stand *model.Stand) error
	FindByID(ctx context.Context, id int64) (*model.Stand, error)
	FindAll(ctx context.Context, filters model.StandFilters) ([]model.Stand, error)
	Update(ctx context.Context, stand *model.Stand) error
	Delete(ctx context.Context, id int64) error
}

type standRepository struct {
	db DBTX
}

// NewStandRepository creates a new StandRepository
func NewStandRepository(db DBTX) StandRepository {
	return &standRepository{db: db}
}

const standColumns = `id, name, location, category, owner_id, opening_hours, is_active, created_at`

func scanStand(row pgx.Row, s *model.Stand) error {
	return row.Scan(&s.ID, &s.Name, &s.Location, &s.Category, &s.OwnerID, &s.OpeningHours, &s.IsActive, &s.CreatedAt)
}

// Create inserts a new stand into the database
func (r *standRepository) Create(ctx context.Context, s *model.Stand) error {
	sql := `INSERT INTO stands (name, location, category, owner_id, opening_hours, is_active)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, s.Name, s.Location, s.Category, s.OwnerID, s.OpeningHours, s.IsActive).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create stand: %w", err)
	}
	return nil
}

// FindByID retrieves a stand by its ID
func (r *standRepository) FindByID(ctx context.Context, id int64) (*model.Stand, error) {
	s := &model.Stand{}
	err := scanStand(r.db.QueryRow(ctx, `SELECT `+standColumns+` FROM stands WHERE id = $1`, id), s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find stand by ID: %w", err)
	}
	return s, nil
}

// FindAll lists stands ordered by name. OpenNow is evaluated by the service, not in SQL.
func (r *standRepository) FindAll(ctx context.Context, filters model.StandFilters) ([]model.Stand, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + standColumns + ` FROM stands`)

	args := []any{}
	argCount := 1
	var conditions []string

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argCount))
		args = append(args, *filters.OwnerID)
		argCount++
	}
	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *filters.IsActive)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stands: %w", err)
	}
	defer rows.Close()

	stands := []model.Stand{}
	for rows.Next() {
		var s model.Stand
		if err := scanStand(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan stand row: %w", err)
		}
		stands = append(stands, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stand rows: %w", err)
	}
	return stands, nil
}

// Update writes every mutable column of the stand
func (r *standRepository) Update(ctx context.Context, s *model.Stand) error {
	sql := `UPDATE stands
            SET name = $1, location = $2, category = $3, owner_id = $4, opening_hours = $5, is_active = $6
            WHERE id = $7`
	cmdTag, err := r.db.Exec(ctx, sql, s.Name, s.Location, s.Category, s.OwnerID, s.OpeningHours, s.IsActive, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update stand: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a stand; its menu items and reviews cascade
func (r *standRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM stands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stand: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
