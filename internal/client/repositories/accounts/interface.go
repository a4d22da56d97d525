package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

// Repository is the email -> account mapping. Lookups are exact and
// case-sensitive. Get and Update return an error wrapping
// common.ErrNotFound for an unknown email.
type Repository interface {
	Get(ctx context.Context, email string) (*models.Account, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, acc *models.Account) error
	Update(ctx context.Context, email string, acc *models.Account) error
	List(ctx context.Context) ([]models.Account, error)
}
