package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

type Registration struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// AuthRepository is the remote identity and session API. The returned
// string is the server's optional message.
type AuthRepository interface {
	Me(ctx context.Context) (*entity.Identity, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) (string, error)
	Register(ctx context.Context, role entity.Role, input Registration) (string, error)
}
