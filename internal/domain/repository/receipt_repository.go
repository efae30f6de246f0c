package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	"github.com/zragie/ngo-receipts-api/pkg/pagination"
)

// ReceiptFilter narrows receipt history queries.
type ReceiptFilter struct {
	OrganizationID *uuid.UUID
	// Search matches donor name or receipt number, case-insensitively.
	Search string
}

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Create inserts a receipt row. A duplicate receipt_number surfaces as
	// ErrDuplicateReceiptNumber so callers can regenerate and retry.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByNumber(ctx context.Context, number string) (*entity.Receipt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns receipts issued by the user with page-based pagination,
	// newest first.
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, filter ReceiptFilter) ([]entity.Receipt, int64, error)
	// ListWithCursor returns receipts using cursor-based pagination.
	ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, filter ReceiptFilter) ([]entity.Receipt, error)
}
