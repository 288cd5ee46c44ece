package service

import (
	"context"
	"errors"
	"fmt"

	"streetbite/internal/model"
	"streetbite/internal/repository"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItemService defines operations for menu items. Writes are allowed to
// the owner of the item's stand and to admins.
type MenuItemService interface {
	CreateMenuItem(ctx context.Context, actor model.Actor, req model.CreateMenuItemRequest) (*model.MenuItem, error)
	GetMenuItem(ctx context.Context, itemID int64) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]model.MenuItem, error)
	ListStandMenu(ctx context.Context, standID int64) ([]model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, itemID int64, actor model.Actor, req model.UpdateMenuItemRequest) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, itemID int64, actor model.Actor) error
}

type menuItemService struct {
	repo   repository.MenuItemRepository
	stands repository.StandRepository
}

// NewMenuItemService creates a new MenuItemService
func NewMenuItemService(repo repository.MenuItemRepository, stands repository.StandRepository) MenuItemService {
	return &menuItemService{repo: repo, stands: stands}
}

// managedStand loads the stand and checks that actor may change its menu
func (s *menuItemService) managedStand(ctx context.Context, standID int64, actor model.Actor) error {
	stand, err := s.stands.FindByID(ctx, standID)
	if err != nil {
		return fmt.Errorf("failed to find stand for menu item: %w", err)
	}
	if stand == nil {
		return ErrStandNotFound
	}
	if !canManage(actor, stand) {
		return ErrForbidden
	}
	return nil
}

func (s *menuItemService) CreateMenuItem(ctx context.Context, actor model.Actor, req model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if req.Price == nil || *req.Price < 0 {
		return nil, invalid("price must be zero or more")
	}
	if err := s.managedStand(ctx, req.StandID, actor); err != nil {
		return nil, err
	}

	item := &model.MenuItem{
		StandID:     req.StandID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Available:   true,
	}
	if req.IsVegan != nil {
		item.IsVegan = *req.IsVegan
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item in repo: %w", err)
	}
	return item, nil
}

func (s *menuItemService) GetMenuItem(ctx context.Context, itemID int64) (*model.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find menu item by ID: %w", err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

func (s *menuItemService) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items from repo: %w", err)
	}
	return items, nil
}

func (s *menuItemService) ListStandMenu(ctx context.Context, standID int64) ([]model.MenuItem, error) {
	stand, err := s.stands.FindByID(ctx, standID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stand for menu: %w", err)
	}
	if stand == nil {
		return nil, ErrStandNotFound
	}

	items, err := s.repo.FindByStand(ctx, standID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stand menu from repo: %w", err)
	}
	return items, nil
}

func (s *menuItemService) UpdateMenuItem(ctx context.Context, itemID int64, actor model.Actor, req model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	item, err := s.GetMenuItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.managedStand(ctx, item.StandID, actor); err != nil {
		return nil, err
	}
	// Moving an item requires managing the destination stand too
	if req.StandID != nil && *req.StandID != item.StandID {
		if err := s.managedStand(ctx, *req.StandID, actor); err != nil {
			return nil, err
		}
		item.StandID = *req.StandID
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return nil, invalid("price must be zero or more")
		}
		item.Price = *req.Price
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.IsVegan != nil {
		item.IsVegan = *req.IsVegan
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item in repo: %w", err)
	}
	return item, nil
}

func (s *menuItemService) DeleteMenuItem(ctx context.Context, itemID int64, actor model.Actor) error {
	item, err := s.GetMenuItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.managedStand(ctx, item.StandID, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item in repo: %w", err)
	}
	return nil
}
