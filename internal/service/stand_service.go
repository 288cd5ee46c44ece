package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streetbite/internal/hours"
	"streetbite/internal/model"
	"streetbite/internal/repository"
)

var (
	ErrStandNotFound = errors.New("stand not found")
	ErrForbidden     = errors.New("forbidden: user does not have permission for this action")
)

// StandService defines operations for food stands. Every stand it returns
// has IsOpenNow evaluated at the service clock in the stand time zone.
type StandService interface {
	CreateStand(ctx context.Context, actor model.Actor, req model.CreateStandRequest) (*model.Stand, error)
	GetStand(ctx context.Context, standID int64) (*model.Stand, error)
	ListStands(ctx context.Context, filters model.StandFilters) ([]model.Stand, error)
	GetOpenStatus(ctx context.Context, standID int64) (*model.OpenStatus, error)
	UpdateStand(ctx context.Context, standID int64, actor model.Actor, req model.UpdateStandRequest) (*model.Stand, error)
	DeleteStand(ctx context.Context, standID int64, actor model.Actor) error
	CountOpen(ctx context.Context) (int, error)
}

type standService struct {
	repo repository.StandRepository
	loc  *time.Location
	now  func() time.Time
}

// NewStandService creates a new StandService. A nil loc means UTC; a nil now means time.Now.
func NewStandService(repo repository.StandRepository, loc *time.Location, now func() time.Time) StandService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &standService{repo: repo, loc: loc, now: now}
}

func (s *standService) localNow() time.Time {
	return s.now().In(s.loc)
}

func evaluate(stand *model.Stand, at time.Time) {
	stand.IsOpenNow = stand.OpeningHours != nil && hours.IsOpen(*stand.OpeningHours, at)
}

// canManage reports whether actor may modify stand or anything it owns
func canManage(actor model.Actor, stand *model.Stand) bool {
	if actor.IsAdmin() {
		return true
	}
	return stand.OwnerID != nil && *stand.OwnerID == actor.UserID
}

func (s *standService) CreateStand(ctx context.Context, actor model.Actor, req model.CreateStandRequest) (*model.Stand, error) {
	if actor.Role != model.RoleOwner && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	stand := &model.Stand{
		Name:         req.Name,
		Location:     req.Location,
		Category:     req.Category,
		OpeningHours: req.OpeningHours,
		IsActive:     true,
	}
	if req.IsActive != nil {
		stand.IsActive = *req.IsActive
	}
	if actor.IsAdmin() {
		stand.OwnerID = req.OwnerID
	} else {
		ownerID := actor.UserID
		stand.OwnerID = &ownerID
	}

	if err := s.repo.Create(ctx, stand); err != nil {
		return nil, fmt.Errorf("failed to create stand in repo: %w", err)
	}
	evaluate(stand, s.localNow())
	return stand, nil
}

func (s *standService) find(ctx context.Context, standID int64) (*model.Stand, error) {
	stand, err := s.repo.FindByID(ctx, standID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stand by ID: %w", err)
	}
	if stand == nil {
		return nil, ErrStandNotFound
	}
	return stand, nil
}

func (s *standService) GetStand(ctx context.Context, standID int64) (*model.Stand, error) {
	stand, err := s.find(ctx, standID)
	if err != nil {
		return nil, err
	}
	evaluate(stand, s.localNow())
	return stand, nil
}

// ListStands applies the SQL filters in the repository and OpenNow here
func (s *standService) ListStands(ctx context.Context, filters model.StandFilters) ([]model.Stand, error) {
	stands, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list stands from repo: %w", err)
	}

	at := s.localNow()
	result := stands[:0]
	for i := range stands {
		evaluate(&stands[i], at)
		if filters.OpenNow && !stands[i].IsOpenNow {
			continue
		}
		result = append(result, stands[i])
	}
	return result, nil
}

func (s *standService) GetOpenStatus(ctx context.Context, standID int64) (*model.OpenStatus, error) {
	stand, err := s.find(ctx, standID)
	if err != nil {
		return nil, err
	}

	at := s.localNow()
	status := &model.OpenStatus{
		StandID:      stand.ID,
		OpeningHours: stand.OpeningHours,
		CheckedAt:    at,
	}
	if stand.OpeningHours == nil {
		return status, nil
	}

	sched, ok := hours.Parse(*stand.OpeningHours)
	if !ok {
		return status, nil
	}
	status.IsOpenNow = sched.OpenAt(at)
	status.Window = sched.String()
	status.Overnight = sched.Overnight()
	for _, d := range sched.Days.Days() {
		status.Days = append(status.Days, d.String())
	}
	return status, nil
}

func (s *standService) UpdateStand(ctx context.Context, standID int64, actor model.Actor, req model.UpdateStandRequest) (*model.Stand, error) {
	stand, err := s.find(ctx, standID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, stand) {
		return nil, ErrForbidden
	}
	if req.OwnerID != nil && !actor.IsAdmin() {
		return nil, ErrForbidden // Only admins reassign stands
	}

	if req.Name != nil {
		stand.Name = *req.Name
	}
	if req.Location != nil {
		stand.Location = req.Location
	}
	if req.Category != nil {
		stand.Category = req.Category
	}
	if req.OwnerID != nil {
		stand.OwnerID = req.OwnerID
	}
	if req.OpeningHours != nil {
		stand.OpeningHours = req.OpeningHours
	}
	if req.IsActive != nil {
		stand.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, stand); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStandNotFound
		}
		return nil, fmt.Errorf("failed to update stand in repo: %w", err)
	}
	evaluate(stand, s.localNow())
	return stand, nil
}

func (s *standService) DeleteStand(ctx context.Context, standID int64, actor model.Actor) error {
	stand, err := s.find(ctx, standID)
	if err != nil {
		return err
	}
	if !canManage(actor, stand) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, standID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStandNotFound
		}
		return fmt.Errorf("failed to delete stand in repo: %w", err)
	}
	return nil
}

// CountOpen returns how many active stands are open right now
func (s *standService) CountOpen(ctx context.Context) (int, error) {
	active := true
	stands, err := s.ListStands(ctx, model.StandFilters{IsActive: &active, OpenNow: true})
	if err != nil {
		return 0, err
	}
	return len(stands), nil
}
