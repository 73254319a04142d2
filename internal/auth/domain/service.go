package domain

import (
	"context"
)

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	// Login checks the administrative bypass pair first, then the user
	// store, and returns a signed bearer token on success.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	CurrentUser(ctx context.Context, subject string) (*User, error)
}

type CreateUserRequest struct {
	Email    string
	Password string
	Role     string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
}
