package client

import (
	"context"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// Client is the storefront API as seen by the CLI.
type Client interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)

	ListSweets(ctx context.Context) ([]models.Sweet, error)
	CreateSweet(ctx context.Context, in models.SweetInput) (*models.Sweet, error)
	UpdateSweet(ctx context.Context, id models.ID, upd models.SweetUpdate) (*models.Sweet, error)
	DeleteSweet(ctx context.Context, id models.ID) error
	PurchaseSweet(ctx context.Context, id models.ID, quantity int) (*models.Sweet, error)
}
