package repo

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"magazyn/internal/model"
	"magazyn/internal/storage"
)

// Users przechowuje użytkowników w data/users.json.
type Users struct {
	mu   sync.Mutex
	path string
	log  *zap.SugaredLogger
}

func NewUsers(dataDir string, log *zap.SugaredLogger) *Users {
	return &Users{path: filepath.Join(dataDir, "users.json"), log: log}
}

func (r *Users) read() ([]model.User, error) {
	users := []model.User{}
	if err := storage.ReadCollection(r.path, &users); err != nil {
		r.log.Errorw("reading users file", "error", err)
		return nil, err
	}
	return users, nil
}

// List returns all users.
func (r *Users) List() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Create assigns the next id and appends the user.
func (r *Users) Create(u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return model.User{}, err
	}
	ids := make([]int, len(users))
	for i, existing := range users {
		ids[i] = existing.ID
	}
	u.ID = nextID(ids)
	users = append(users, u)
	if err := storage.WriteCollection(r.path, users); err != nil {
		r.log.Errorw("writing users file", "error", err)
		return model.User{}, err
	}
	return u, nil
}

// UserUpdate is a partial update sent via PUT /api/users.
type UserUpdate struct {
	ID    int     `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Update merges a partial update. An email already used by another user
// is rejected with ErrEmailExists.
func (r *Users) Update(upd UserUpdate) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return model.User{}, err
	}
	idx := -1
	for i, u := range users {
		if u.ID == upd.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.User{}, ErrNotFound
	}
	if upd.Email != nil {
		for _, u := range users {
			if u.ID != upd.ID && u.Email == *upd.Email {
				return model.User{}, ErrEmailExists
			}
		}
		users[idx].Email = *upd.Email
	}
	if upd.Name != nil {
		users[idx].Name = *upd.Name
	}
	if err := storage.WriteCollection(r.path, users); err != nil {
		r.log.Errorw("writing users file", "error", err)
		return model.User{}, err
	}
	return users[idx], nil
}

// Delete removes the user by id and returns the removed record.
func (r *Users) Delete(id int) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return model.User{}, err
	}
	for i, u := range users {
		if u.ID == id {
			users = append(users[:i], users[i+1:]...)
			if err := storage.WriteCollection(r.path, users); err != nil {
				r.log.Errorw("writing users file", "error", err)
				return model.User{}, err
			}
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// DeleteAll wipes the collection and reports how many records were removed.
func (r *Users) DeleteAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return 0, err
	}
	if err := storage.WriteCollection(r.path, []model.User{}); err != nil {
		r.log.Errorw("writing users file", "error", err)
		return 0, err
	}
	return len(users), nil
}
