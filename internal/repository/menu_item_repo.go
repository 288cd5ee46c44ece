package repository

import (
	"context"
	"errors"
	"fmt"

	"streetbite/internal/model"

	"github.com/jackc/pgx/v5"
)

// MenuItemRepository defines operations for menu item data
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id int64) (*model.MenuItem, error)
	FindAll(ctx context.Context) ([]model.MenuItem, error)
	FindByStand(ctx context.Context, standID int64) ([]model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type menuItemRepository struct {
	db DBTX
}

// NewMenuItemRepository creates a new MenuItemRepository
func NewMenuItemRepository(db DBTX) MenuItemRepository {
	return &menuItemRepository{db: db}
}

const menuItemColumns = `id, stand_id, name, description, price::float8, is_vegan, available, created_at`

func scanMenuItem(row pgx.Row, i *model.MenuItem) error {
	return row.Scan(&i.ID, &i.StandID, &i.Name, &i.Description, &i.Price, &i.IsVegan, &i.Available, &i.CreatedAt)
}

func (r *menuItemRepository) Create(ctx context.Context, i *model.MenuItem) error {
	sql := `INSERT INTO menu_items (stand_id, name, description, price, is_vegan, available)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, i.StandID, i.Name, i.Description, i.Price, i.IsVegan, i.Available).
		Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuItemRepository) FindByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	i := &model.MenuItem{}
	err := scanMenuItem(r.db.QueryRow(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id), i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find menu item by ID: %w", err)
	}
	return i, nil
}

func (r *menuItemRepository) FindAll(ctx context.Context) ([]model.MenuItem, error) {
	return r.list(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY name`)
}

func (r *menuItemRepository) FindByStand(ctx context.Context, standID int64) ([]model.MenuItem, error) {
	return r.list(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE stand_id = $1 ORDER BY name`, standID)
}

func (r *menuItemRepository) list(ctx context.Context, sql string, args ...any) ([]model.MenuItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		var i model.MenuItem
		if err := scanMenuItem(rows, &i); err != nil {
			return nil, fmt.Errorf("failed to scan menu item row: %w", err)
		}
		items = append(items, i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu item rows: %w", err)
	}
	return items, nil
}

func (r *menuItemRepository) Update(ctx context.Context, i *model.MenuItem) error {
	sql := `UPDATE menu_items
            SET stand_id = $1, name = $2, description = $3, price = $4, is_vegan = $5, available = $6
            WHERE id = $7`
	cmdTag, err := r.db.Exec(ctx, sql, i.StandID, i.Name, i.Description, i.Price, i.IsVegan, i.Available, i.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
