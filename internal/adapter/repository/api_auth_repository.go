package repository

import (
	"context"
	"net/http"

	"marketplace/internal/domain/entity"
	domainrepo "marketplace/internal/domain/repository"
	apperrors "marketplace/pkg/errors"
)

type APIAuthRepository struct {
	api Requester
}

// NewAPIAuthRepository creates a new auth repository
func NewAPIAuthRepository(api Requester) *APIAuthRepository {
	return &APIAuthRepository{api: api}
}

func (r *APIAuthRepository) Me(ctx context.Context) (*entity.Identity, error) {
	var identity entity.Identity
	if err := get(ctx, r.api, "/me", &identity); err != nil {
		return nil, err
	}
	if identity.ID == "" && identity.Email == "" {
		return nil, apperrors.Unauthorized("No active session", nil)
	}
	return &identity, nil
}

func (r *APIAuthRepository) Login(ctx context.Context, email, password string) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	return message(reply), err
}

func (r *APIAuthRepository) Logout(ctx context.Context) (string, error) {
	reply, err := r.api.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return message(reply), err
}

func (r *APIAuthRepository) Register(ctx context.Context, role entity.Role, input domainrepo.Registration) (string, error) {
	path := "/auth/user/register"
	if role == entity.RoleSeller {
		path = "/auth/seller/register"
	}
	reply, err := r.api.Do(ctx, http.MethodPost, path, input, nil)
	return message(reply), err
}
