// Package memstore is an in-memory implementation of the user store, with the
// same uniqueness, not found & address upsert semantics as the gorm store.
package memstore

import (
	"context"
	"sync"

	"github.com/Daskott/rolodex/server/apperr"
	"github.com/Daskott/rolodex/server/models"
	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	order []string
	users map[string]*models.User
}

func New() *Store {
	return &Store{users: make(map[string]*models.User)}
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, *clone(s.users[id]))
	}

	return users, nil
}

func (s *Store) FindUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	return clone(user), nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, "") {
		return &apperr.ConflictError{Field: "email"}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if user.Address != nil {
		if user.Address.ID == "" {
			user.Address.ID = uuid.NewString()
		}
		user.Address.UserID = user.ID
	}

	s.users[user.ID] = clone(user)
	s.order = append(s.order, user.ID)

	return nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, data map[string]interface{}, address *models.Address) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	// Work on a copy so a failed update leaves the stored user untouched
	user := clone(existing)
	for column, value := range data {
		str, _ := value.(string)

		switch column {
		case "name":
			user.Name = str
		case "email":
			if s.emailTaken(str, id) {
				return nil, &apperr.ConflictError{Field: "email"}
			}
			user.Email = str
		case "phone":
			user.Phone = str
		case "company":
			user.Company = str
		}
	}

	if address != nil {
		if user.Address == nil {
			user.Address = &models.Address{}
			user.Address.ID = uuid.NewString()
			user.Address.UserID = id
		}
		user.Address.Replace(address)
	}

	s.users[id] = user

	return clone(user), nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperr.ErrNotFound
	}

	delete(s.users, id)
	for i, userID := range s.order {
		if userID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *Store) emailTaken(email string, exceptID string) bool {
	for id, user := range s.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

func clone(user *models.User) *models.User {
	copied := *user
	if user.Address != nil {
		address := *user.Address
		copied.Address = &address
	}
	return &copied
}
