package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	repo "github.com/geoexplorer/geoexplorer-api/internal/domain/repository"
)

var ErrNotInFavorites = errors.New("country not found in favorites")

// favoritesWriteAttempts bounds the optimistic-concurrency retry loop.
const favoritesWriteAttempts = 3

// FavoritesService mutates the per-user favorites set. The acting user id
// always comes from the verified token, never from the request body or path.
type FavoritesService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewFavoritesService(r repo.UserRepository, logger *logrus.Logger) *FavoritesService {
	return &FavoritesService{Repo: r, Logger: logger}
}

// List returns the favorites set in stored (insertion) order.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u.Favorites, nil
}

// Add appends code to the favorites set. Adding a code that is already
// present is a no-op, not an error. The write is conditional on the document
// version; on conflict the read-modify-write is retried.
func (s *FavoritesService) Add(ctx context.Context, userID, code string) ([]string, error) {
	return s.mutate(ctx, userID, func(favorites []string) ([]string, error) {
		for _, c := range favorites {
			if c == code {
				return favorites, nil
			}
		}
		return append(favorites, code), nil
	})
}

// Remove deletes code from the favorites set. Unlike Add, removing an absent
// code is an error; the SPA relies on the 400 to notice a stale list.
func (s *FavoritesService) Remove(ctx context.Context, userID, code string) ([]string, error) {
	return s.mutate(ctx, userID, func(favorites []string) ([]string, error) {
		out := make([]string, 0, len(favorites))
		found := false
		for _, c := range favorites {
			if c == code && !found {
				found = true
				continue
			}
			out = append(out, c)
		}
		if !found {
			return nil, ErrNotInFavorites
		}
		return out, nil
	})
}

func (s *FavoritesService) mutate(ctx context.Context, userID string, apply func([]string) ([]string, error)) ([]string, error) {
	var lastErr error
	for attempt := 0; attempt < favoritesWriteAttempts; attempt++ {
		u, err := s.Repo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		next, err := apply(u.Favorites)
		if err != nil {
			return nil, err
		}
		if len(next) == len(u.Favorites) && equal(next, u.Favorites) {
			// Nothing changed; skip the write.
			return next, nil
		}
		err = s.Repo.UpdateFavorites(ctx, userID, next, u.Version)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if !errors.Is(err, repo.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": userID, "attempt": attempt + 1}).
				Debug("favorites write lost version race, retrying")
		}
	}
	return nil, lastErr
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
