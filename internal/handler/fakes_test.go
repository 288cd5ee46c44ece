package handler_test

import (
	"context"

	"streetbite/internal/health"
	"streetbite/internal/model"
	"streetbite/internal/service"
)

type fakeAuthService struct {
	user  *model.User
	token string
	err   error
	input model.RegisterInput
}

func (f *fakeAuthService) Register(_ context.Context, input model.RegisterInput) (*model.User, error) {
	f.input = input
	return f.user, f.err
}

func (f *fakeAuthService) VerifyCredentials(_ context.Context, _, _ string) (*model.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.AuthResult{Valid: f.user != nil, User: f.user}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (*model.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.token, nil
}

type fakeUserService struct {
	users map[int64]*model.User
}

func (f *fakeUserService) GetUser(_ context.Context, userID int64, actor model.Actor) (*model.User, error) {
	if actor.UserID != userID && !actor.IsAdmin() {
		return nil, service.ErrForbidden
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserService) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, service.ErrUserNotFound
}

func (f *fakeUserService) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeStandService struct {
	stand   *model.Stand
	stands  []model.Stand
	err     error
	filters model.StandFilters
	actor   model.Actor
	deleted int64
}

func (f *fakeStandService) CreateStand(_ context.Context, actor model.Actor, req model.CreateStandRequest) (*model.Stand, error) {
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &model.Stand{ID: 7, Name: req.Name, OwnerID: &actor.UserID, IsActive: true}, nil
}

func (f *fakeStandService) GetStand(_ context.Context, _ int64) (*model.Stand, error) {
	return f.stand, f.err
}

func (f *fakeStandService) ListStands(_ context.Context, filters model.StandFilters) ([]model.Stand, error) {
	f.filters = filters
	return f.stands, f.err
}

func (f *fakeStandService) GetOpenStatus(_ context.Context, standID int64) (*model.OpenStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.OpenStatus{StandID: standID, IsOpenNow: true, Window: "11:00-22:00"}, nil
}

func (f *fakeStandService) UpdateStand(_ context.Context, _ int64, actor model.Actor, _ model.UpdateStandRequest) (*model.Stand, error) {
	f.actor = actor
	return f.stand, f.err
}

func (f *fakeStandService) DeleteStand(_ context.Context, standID int64, actor model.Actor) error {
	f.actor = actor
	f.deleted = standID
	return f.err
}

func (f *fakeStandService) CountOpen(_ context.Context) (int, error) {
	return len(f.stands), f.err
}

type fakeMenuItemService struct {
	items []model.MenuItem
	err   error
	req   model.CreateMenuItemRequest
}

func (f *fakeMenuItemService) CreateMenuItem(_ context.Context, _ model.Actor, req model.CreateMenuItemRequest) (*model.MenuItem, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &model.MenuItem{ID: 3, StandID: req.StandID, Name: req.Name, Price: *req.Price}, nil
}

func (f *fakeMenuItemService) GetMenuItem(_ context.Context, _ int64) (*model.MenuItem, error) {
	if f.err != nil || len(f.items) == 0 {
		return nil, service.ErrMenuItemNotFound
	}
	return &f.items[0], nil
}

func (f *fakeMenuItemService) ListMenuItems(_ context.Context) ([]model.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeMenuItemService) ListStandMenu(_ context.Context, _ int64) ([]model.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeMenuItemService) UpdateMenuItem(_ context.Context, _ int64, _ model.Actor, _ model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.items[0], nil
}

func (f *fakeMenuItemService) DeleteMenuItem(_ context.Context, _ int64, _ model.Actor) error {
	return f.err
}

type fakeReviewService struct {
	review *model.Review
	err    error
	req    model.CreateReviewRequest
	actor  model.Actor
}

func (f *fakeReviewService) CreateReview(_ context.Context, actor model.Actor, req model.CreateReviewRequest) (*model.Review, error) {
	f.actor = actor
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &model.Review{ID: 9, StandID: req.StandID, UserID: actor.UserID, Rating: req.Rating}, nil
}

func (f *fakeReviewService) GetReview(_ context.Context, _ int64) (*model.Review, error) {
	return f.review, f.err
}

func (f *fakeReviewService) ListReviews(_ context.Context) ([]model.Review, error) {
	return nil, f.err
}

func (f *fakeReviewService) ListStandReviews(_ context.Context, _ int64) ([]model.Review, error) {
	return nil, f.err
}

func (f *fakeReviewService) UpdateReview(_ context.Context, _ int64, actor model.Actor, _ model.UpdateReviewRequest) (*model.Review, error) {
	f.actor = actor
	return f.review, f.err
}

func (f *fakeReviewService) DeleteReview(_ context.Context, _ int64, actor model.Actor) error {
	f.actor = actor
	return f.err
}

func (f *fakeReviewService) LikeReview(_ context.Context, _ int64) (*model.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	liked := *f.review
	liked.Likes++
	return &liked, nil
}

type fakeChecker struct {
	up bool
}

func (f fakeChecker) Liveness(_ context.Context) health.HealthResult {
	return health.HealthResult{Status: "up"}
}

func (f fakeChecker) Readiness(_ context.Context) health.HealthResult {
	if f.up {
		return health.HealthResult{Status: "up"}
	}
	return health.HealthResult{Status: "down", Checks: map[string]health.CheckResult{
		"postgres": {Status: "down", Error: "unreachable"},
	}}
}
