package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
)

// OrganizationRepository defines the interface for organization data operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the user's organizations, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error)
}
