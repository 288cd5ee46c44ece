package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"streetbite/internal/model"
	"streetbite/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]model.UserWithHash
	nextID  int64
	err     error
	lookups int
	// createErr is returned by Create after the lookup succeeded
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]model.UserWithHash{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.UserWithHash) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u.User, nil
}

func (r *fakeUserRepo) FindByEmailWithHash(_ context.Context, email string) (*model.UserWithHash, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byEmail {
		if u.ID == id {
			user := u.User
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []model.User{}
	for _, u := range r.byEmail {
		users = append(users, u.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type fakeStandRepo struct {
	stands map[int64]model.Stand
	nextID int64
}

func newFakeStandRepo(stands ...model.Stand) *fakeStandRepo {
	r := &fakeStandRepo{stands: map[int64]model.Stand{}}
	for _, s := range stands {
		r.stands[s.ID] = s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeStandRepo) Create(_ context.Context, s *model.Stand) error {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	r.stands[s.ID] = *s
	return nil
}

func (r *fakeStandRepo) FindByID(_ context.Context, id int64) (*model.Stand, error) {
	s, ok := r.stands[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeStandRepo) FindAll(_ context.Context, f model.StandFilters) ([]model.Stand, error) {
	stands := []model.Stand{}
	for _, s := range r.stands {
		if f.IsActive != nil && s.IsActive != *f.IsActive {
			continue
		}
		if f.OwnerID != nil && (s.OwnerID == nil || *s.OwnerID != *f.OwnerID) {
			continue
		}
		if f.Category != nil && (s.Category == nil || *s.Category != *f.Category) {
			continue
		}
		stands = append(stands, s)
	}
	sort.Slice(stands, func(i, j int) bool { return stands[i].Name < stands[j].Name })
	return stands, nil
}

func (r *fakeStandRepo) Update(_ context.Context, s *model.Stand) error {
	if _, ok := r.stands[s.ID]; !ok {
		return repository.ErrNotFound
	}
	r.stands[s.ID] = *s
	return nil
}

func (r *fakeStandRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.stands[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.stands, id)
	return nil
}

type fakeMenuItemRepo struct {
	items  map[int64]model.MenuItem
	nextID int64
}

func newFakeMenuItemRepo() *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: map[int64]model.MenuItem{}}
}

func (r *fakeMenuItemRepo) Create(_ context.Context, i *model.MenuItem) error {
	r.nextID++
	i.ID = r.nextID
	r.items[i.ID] = *i
	return nil
}

func (r *fakeMenuItemRepo) FindByID(_ context.Context, id int64) (*model.MenuItem, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r *fakeMenuItemRepo) FindAll(context.Context) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	for _, i := range r.items {
		items = append(items, i)
	}
	return items, nil
}

func (r *fakeMenuItemRepo) FindByStand(_ context.Context, standID int64) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	for _, i := range r.items {
		if i.StandID == standID {
			items = append(items, i)
		}
	}
	return items, nil
}

func (r *fakeMenuItemRepo) Update(_ context.Context, i *model.MenuItem) error {
	if _, ok := r.items[i.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[i.ID] = *i
	return nil
}

func (r *fakeMenuItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeReviewRepo struct {
	reviews map[int64]model.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[int64]model.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *model.Review) error {
	r.nextID++
	rv.ID = r.nextID
	rv.ReviewedAt = time.Now()
	rv.UpdatedAt = rv.ReviewedAt
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id int64) (*model.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r *fakeReviewRepo) FindAll(context.Context) ([]model.Review, error) {
	reviews := []model.Review{}
	for _, rv := range r.reviews {
		reviews = append(reviews, rv)
	}
	return reviews, nil
}

func (r *fakeReviewRepo) FindByStand(_ context.Context, standID int64) ([]model.Review, error) {
	reviews := []model.Review{}
	for _, rv := range r.reviews {
		if rv.StandID == standID {
			reviews = append(reviews, rv)
		}
	}
	return reviews, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rv *model.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return repository.ErrNotFound
	}
	rv.UpdatedAt = time.Now()
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeReviewRepo) IncrementLikes(_ context.Context, id int64) (int, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	rv.Likes++
	r.reviews[id] = rv
	return rv.Likes, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
