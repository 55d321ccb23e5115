package service

import (
	"context"
	"strings"

	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/server/validation"
)

// Store is the persistence the user service depends on. Implementations return
// apperr.ErrNotFound for absent users & *apperr.ConflictError for uniqueness violations.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id string, data map[string]interface{}, address *models.Address) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type AddressInput struct {
	Street  string                `json:"street"`
	City    string                `json:"city"`
	Zipcode string                `json:"zipcode"`
	Lat     validation.Coordinate `json:"lat"`
	Lng     validation.Coordinate `json:"lng"`
}

type CreateUserInput struct {
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Company string        `json:"company"`
	Address *AddressInput `json:"address"`
}

// UpdateUserInput holds the fields to change on a user. Nil fields are left as they are.
type UpdateUserInput struct {
	Name    *string       `json:"name"`
	Email   *string       `json:"email"`
	Phone   *string       `json:"phone"`
	Company *string       `json:"company"`
	Address *AddressInput `json:"address"`
}

type UserService struct {
	store     Store
	validator *validation.Validator
}

func NewUserService(store Store, validator *validation.Validator) *UserService {
	return &UserService{store: store, validator: validator}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.FindUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user := &models.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   validation.NormalizeEmail(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Company: in.Company,
		Address: in.Address.toModel(),
	}

	fields := []validation.Field{
		{Name: "name", Value: user.Name},
		{Name: "email", Value: user.Email},
		{Name: "phone", Value: user.Phone},
	}
	if user.Address != nil {
		fields = append(fields, validation.Field{Name: "zipcode", Value: user.Address.Zipcode})
	}

	if err := s.validator.Check(fields...); err != nil {
		return nil, err
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	data := map[string]interface{}{}
	fields := []validation.Field{}

	if in.Name != nil {
		data["name"] = strings.TrimSpace(*in.Name)
		fields = append(fields, validation.Field{Name: "name", Value: data["name"].(string)})
	}

	if in.Email != nil {
		data["email"] = validation.NormalizeEmail(*in.Email)
		fields = append(fields, validation.Field{Name: "email", Value: data["email"].(string)})
	}

	if in.Phone != nil {
		data["phone"] = strings.TrimSpace(*in.Phone)
		fields = append(fields, validation.Field{Name: "phone", Value: data["phone"].(string)})
	}

	if in.Company != nil {
		data["company"] = *in.Company
	}

	address := in.Address.toModel()
	if address != nil {
		fields = append(fields, validation.Field{Name: "zipcode", Value: address.Zipcode})
	}

	if err := s.validator.Check(fields...); err != nil {
		return nil, err
	}

	return s.store.UpdateUser(ctx, id, data, address)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteUser(ctx, id)
}

func (in *AddressInput) toModel() *models.Address {
	if in == nil {
		return nil
	}

	return &models.Address{
		Street:  in.Street,
		City:    in.City,
		Zipcode: strings.TrimSpace(in.Zipcode),
		Lat:     in.Lat.Float64(),
		Lng:     in.Lng.Float64(),
	}
}
