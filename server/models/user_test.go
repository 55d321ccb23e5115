package models

import (
	"context"
	"testing"

	"github.com/Daskott/rolodex/server/apperr"
	"github.com/Daskott/rolodex/shared"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := OpenDB(shared.DatabaseConfig{Driver: shared.SQLITE_DRIVER, Dir: t.TempDir()}, false)
	require.Nil(t, err)
	require.Nil(t, AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func newTestUser(email string) *User {
	return &User{
		Name:    "tony stark",
		Email:   email,
		Phone:   "4165550100",
		Company: "stark industries",
		Address: &Address{Street: "10880 Malibu Point", City: "Malibu", Zipcode: "902650", Lat: 34.0, Lng: -118.8},
	}
}

func TestCreateAndFindUser(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("stark@avengers.com")
	err := store.CreateUser(ctx, user)
	require.Nil(t, err)
	assert.NotEmpty(t, user.ID, "Expected an id to be generated for the user")
	assert.NotEmpty(t, user.Address.ID, "Expected an id to be generated for the address")

	found, err := store.FindUser(ctx, user.ID)
	require.Nil(t, err)
	assert.Equal(t, "tony stark", found.Name)
	assert.Equal(t, "stark@avengers.com", found.Email)
	assert.Equal(t, "4165550100", found.Phone)
	assert.Equal(t, "stark industries", found.Company)
	require.NotNil(t, found.Address)
	assert.Equal(t, user.Address.ID, found.Address.ID)
	assert.Equal(t, "902650", found.Address.Zipcode)
	assert.Equal(t, 34.0, found.Address.Lat)
}

func TestCreateUserWithoutAddress(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("natasha@avengers.com")
	user.Address = nil
	require.Nil(t, store.CreateUser(ctx, user))

	found, err := store.FindUser(ctx, user.ID)
	require.Nil(t, err)
	assert.Nil(t, found.Address)
}

func TestCreateUserWithDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.Nil(t, store.CreateUser(ctx, newTestUser("stark@avengers.com")))

	err := store.CreateUser(ctx, newTestUser("stark@avengers.com"))
	var conflictErr *apperr.ConflictError
	require.True(t, errors.As(err, &conflictErr), "Expected a conflict error, got: %v", err)
	assert.Equal(t, "email", conflictErr.Field)

	var userCount, addressCount int64
	db.Model(&User{}).Count(&userCount)
	db.Model(&Address{}).Count(&addressCount)
	assert.Equal(t, int64(1), userCount, "Only the first user should be stored")
	assert.Equal(t, int64(1), addressCount, "The second address should be rolled back")
}

func TestFindUserNotFound(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.FindUser(context.Background(), "missing-id")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListUsers(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	users, err := store.ListUsers(ctx)
	require.Nil(t, err)
	assert.NotNil(t, users, "An empty list should not be nil")
	assert.Len(t, users, 0)

	require.Nil(t, store.CreateUser(ctx, newTestUser("stark@avengers.com")))
	withoutAddress := newTestUser("banner@avengers.com")
	withoutAddress.Address = nil
	require.Nil(t, store.CreateUser(ctx, withoutAddress))

	users, err = store.ListUsers(ctx)
	require.Nil(t, err)
	require.Len(t, users, 2)

	byEmail := map[string]User{}
	for _, user := range users {
		byEmail[user.Email] = user
	}
	assert.NotNil(t, byEmail["stark@avengers.com"].Address, "Addresses should be preloaded")
	assert.Nil(t, byEmail["banner@avengers.com"].Address)
}

func TestUpdateUser(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("stark@avengers.com")
	require.Nil(t, store.CreateUser(ctx, user))

	t.Run("Should leave the address untouched when none is provided", func(t *testing.T) {
		updated, err := store.UpdateUser(ctx, user.ID, map[string]interface{}{"company": "avengers"}, nil)
		require.Nil(t, err)
		assert.Equal(t, "avengers", updated.Company)
		assert.Equal(t, "tony stark", updated.Name)
		require.NotNil(t, updated.Address)
		assert.Equal(t, user.Address.ID, updated.Address.ID)
		assert.Equal(t, "Malibu", updated.Address.City)
		assert.Equal(t, "902650", updated.Address.Zipcode)
	})

	t.Run("Should fully replace an existing address", func(t *testing.T) {
		updated, err := store.UpdateUser(ctx, user.ID, nil, &Address{City: "New York"})
		require.Nil(t, err)
		require.NotNil(t, updated.Address)
		assert.Equal(t, user.Address.ID, updated.Address.ID, "The address record should be reused")
		assert.Equal(t, "New York", updated.Address.City)
		assert.Equal(t, "", updated.Address.Street)
		assert.Equal(t, "", updated.Address.Zipcode)
		assert.Equal(t, 0.0, updated.Address.Lat)
	})

	t.Run("Should ignore columns that can't be updated", func(t *testing.T) {
		updated, err := store.UpdateUser(ctx, user.ID, map[string]interface{}{"id": "hijacked"}, nil)
		require.Nil(t, err)
		assert.Equal(t, user.ID, updated.ID)
	})
}

func TestUpdateUserCreatesMissingAddress(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("natasha@avengers.com")
	user.Address = nil
	require.Nil(t, store.CreateUser(ctx, user))

	updated, err := store.UpdateUser(ctx, user.ID, nil, &Address{City: "Moscow", Zipcode: "101000"})
	require.Nil(t, err)
	require.NotNil(t, updated.Address)
	assert.NotEmpty(t, updated.Address.ID)
	assert.Equal(t, "Moscow", updated.Address.City)
}

func TestUpdateUserNotFound(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.UpdateUser(context.Background(), "missing-id", map[string]interface{}{"name": "x"}, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateUserWithTakenEmail(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	require.Nil(t, store.CreateUser(ctx, newTestUser("stark@avengers.com")))
	other := newTestUser("banner@avengers.com")
	require.Nil(t, store.CreateUser(ctx, other))

	_, err := store.UpdateUser(ctx, other.ID, map[string]interface{}{"email": "stark@avengers.com"}, nil)
	var conflictErr *apperr.ConflictError
	assert.True(t, errors.As(err, &conflictErr), "Expected a conflict error, got: %v", err)
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	user := newTestUser("stark@avengers.com")
	require.Nil(t, store.CreateUser(ctx, user))

	require.Nil(t, store.DeleteUser(ctx, user.ID))

	_, err := store.FindUser(ctx, user.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	var addressCount int64
	db.Model(&Address{}).Where("user_id = ?", user.ID).Count(&addressCount)
	assert.Equal(t, int64(0), addressCount, "The user's address should be deleted with it")

	err = store.DeleteUser(ctx, user.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
