package repository

import (
	"sync"

	"github.com/exlog/exercisetracker/internal/idgen"
	"github.com/exlog/exercisetracker/internal/model"
)

// UserDirectory holds registered users in registration order.
type UserDirectory struct {
	mu    sync.RWMutex
	ids   idgen.Generator
	users []model.User
	index map[string]int // id -> position in users
}

// NewUserDirectory creates an empty directory that assigns ids from gen.
func NewUserDirectory(gen idgen.Generator) *UserDirectory {
	if gen == nil {
		gen = idgen.NewULID()
	}
	return &UserDirectory{
		ids:   gen,
		index: make(map[string]int),
	}
}

// Register creates a user with a fresh id. Any username is accepted,
// including an empty one or one already in use.
func (d *UserDirectory) Register(username string) model.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	user := model.User{
		ID:       d.ids.NewID(),
		Username: username,
	}
	d.index[user.ID] = len(d.users)
	d.users = append(d.users, user)

	return user
}

// ListAll returns every user in registration order.
func (d *UserDirectory) ListAll() []model.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]model.User, len(d.users))
	copy(users, d.users)
	return users
}

// FindByID returns the user with the given id, or ErrUserNotFound.
func (d *UserDirectory) FindByID(id string) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	pos, ok := d.index[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return d.users[pos], nil
}

// Count returns the number of registered users.
func (d *UserDirectory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}
