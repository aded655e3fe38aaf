package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/geoexplorer/geoexplorer-api/internal/domain/entity"
	"github.com/geoexplorer/geoexplorer-api/internal/domain/repository"
)

// UserRepository is an in-memory implementation of repository.UserRepository
// used for isolated unit tests. It mirrors the Mongo repository's semantics,
// including the unique email constraint and the version-conditional
// favorites write.
type UserRepository struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]*entity.User)}
}

func clone(u *entity.User) *entity.User {
	cp := *u
	cp.Favorites = append([]string{}, u.Favorites...)
	return &cp
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	now := time.Now().UTC()
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.Favorites = []string{}
	u.Version = 0
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) UpdateFavorites(_ context.Context, id string, favorites []string, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if u.Version != version {
		return repository.ErrVersionConflict
	}
	u.Favorites = append([]string{}, favorites...)
	u.Version++
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a user outright. The API has no delete operation; tests use
// this to reproduce a token outliving its account.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

var _ repository.UserRepository = (*UserRepository)(nil)
