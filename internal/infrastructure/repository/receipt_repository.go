package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	domainRepo "github.com/zragie/ngo-receipts-api/internal/domain/repository"
	"github.com/zragie/ngo-receipts-api/pkg/pagination"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	err := r.db.WithContext(ctx).Create(receipt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateReceiptNumber
	}
	return err
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).Preload("Organization").First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByNumber(ctx context.Context, number string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).Preload("Organization").First(&receipt, "receipt_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, filter domainRepo.ReceiptFilter) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&entity.Receipt{}).Where("issued_by_id = ?", userID), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Organization").
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

// ListWithCursor returns receipts using cursor-based pagination.
// Fetches limit+1 items to detect if there are more results.
func (r *receiptRepository) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, filter domainRepo.ReceiptFilter) ([]entity.Receipt, error) {
	var receipts []entity.Receipt

	params.Validate()
	query := r.applyFilter(r.db.WithContext(ctx).Model(&entity.Receipt{}).Where("issued_by_id = ?", userID), filter)

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Limit + 1).
		Preload("Organization").
		Order("created_at DESC, id DESC").
		Find(&receipts).Error

	return receipts, err
}

func (r *receiptRepository) applyFilter(query *gorm.DB, filter domainRepo.ReceiptFilter) *gorm.DB {
	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Search != "" {
		query = query.Where("donor_name ILIKE ? OR receipt_number ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	return query
}
