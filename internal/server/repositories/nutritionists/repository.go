package nutritionists

import (
	"context"

	"github.com/dmitrijs2005/nutriportal/internal/server/models"
)

// Repository is the credential store accessor for nutritionist accounts.
type Repository interface {
	Create(ctx context.Context, n *models.Nutritionist) (*models.Nutritionist, error)
	FindByEmail(ctx context.Context, email string) (*models.Nutritionist, error)
	FindByID(ctx context.Context, id string) (*models.Nutritionist, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCRN(ctx context.Context, crn string) (bool, error)
}
