package jsonfile

import (
	"context"

	"github.com/linkmark/linkmark/internal/auth/domain"
	"github.com/linkmark/linkmark/internal/auth/store"
)

type usersRepo struct {
	s *Store
}

var _ store.Users = (*usersRepo)(nil)

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := r.s.loadAll()
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, toDomain(rec))
	}
	return users, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.find(func(rec userRecord) bool { return rec.ID == id })
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.find(func(rec userRecord) bool { return rec.Email == email })
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.find(func(rec userRecord) bool { return rec.Username == username })
}

// CreateUser re-checks both uniqueness invariants while holding the store
// lock, so the check and the append are one atomic sequence even when the
// service layer already screened for conflicts.
func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := r.s.loadAll()
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Email == u.Email {
			return store.ErrEmailTaken
		}
		if rec.Username == u.Username {
			return store.ErrUsernameTaken
		}
	}

	records = append(records, fromDomain(u))
	return r.s.saveAll(records)
}

func (r *usersRepo) find(match func(userRecord) bool) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records, err := r.s.loadAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, rec := range records {
		if match(rec) {
			return toDomain(rec), nil
		}
	}
	return domain.User{}, store.ErrNotFound
}
