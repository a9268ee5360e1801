package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type CreateRequest struct {
	Name string `json:"name"`
	Area string `json:"area"`
	Kind string `json:"kind"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Area      string    `json:"area"`
	Kind      TableKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidKind   = errors.New("invalid_kind")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateName = errors.New("duplicate_name")
	ErrNotFound      = errors.New("not_found")
)
