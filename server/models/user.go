package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns a client is allowed to change on an existing user
var updatableFields = map[string]bool{
	"name":    true,
	"email":   true,
	"phone":   true,
	"company": true,
}

type User struct {
	BaseModel
	Name    string   `json:"name" gorm:"not null"`
	Email   string   `json:"email" gorm:"not null;uniqueIndex"`
	Phone   string   `json:"phone"`
	Company string   `json:"company"`
	Address *Address `json:"address" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Store persists users & their addresses with gorm
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}

	err := s.db.WithContext(ctx).Preload("Address").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(translateError(err), "ListUsers")
	}

	return users, nil
}

func (s *Store) FindUser(ctx context.Context, id string) (*User, error) {
	return findUser(s.db.WithContext(ctx), id)
}

// CreateUser inserts user & its address (if any) in a single transaction
func (s *Store) CreateUser(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}

		if user.Address == nil {
			return nil
		}

		user.Address.UserID = user.ID
		return tx.Create(user.Address).Error
	})

	if err != nil {
		return errors.Wrap(translateError(err), "CreateUser")
	}

	return nil
}

// UpdateUser applies data (column -> value) to the user with the given id.
// When address isn't nil, it replaces every field of the user's address or creates
// one if the user has none. Unknown columns in data are ignored.
func (s *Store) UpdateUser(ctx context.Context, id string, data map[string]interface{}, address *Address) (*User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := User{}
		if err := tx.Select("id").First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		changes := map[string]interface{}{}
		for column, value := range data {
			if updatableFields[column] {
				changes[column] = value
			}
		}

		if len(changes) > 0 {
			if err := tx.Model(&User{}).Where("id = ?", user.ID).Updates(changes).Error; err != nil {
				return err
			}
		}

		if address == nil {
			return nil
		}

		return upsertAddress(tx, user.ID, address)
	})

	if err != nil {
		return nil, errors.Wrap(translateError(err), "UpdateUser")
	}

	return findUser(s.db.WithContext(ctx), id)
}

// DeleteUser removes the user & its address in a single transaction
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&Address{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&User{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(translateError(err), "DeleteUser")
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func findUser(db *gorm.DB, id string) (*User, error) {
	user := User{}

	err := db.Preload("Address").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, errors.Wrap(translateError(err), "FindUser")
	}

	return &user, nil
}
