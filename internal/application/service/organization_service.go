package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	"github.com/zragie/ngo-receipts-api/internal/domain/repository"
	"github.com/zragie/ngo-receipts-api/internal/infrastructure/storage"
	"github.com/zragie/ngo-receipts-api/pkg/apperror"
)

// logoExtensions maps accepted logo content types to stored file extensions.
var logoExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
}

// OrganizationService handles organization-related operations
type OrganizationService struct {
	orgRepo     repository.OrganizationRepository
	store       storage.ObjectStore
	maxLogoSize int64
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo repository.OrganizationRepository, store storage.ObjectStore, maxLogoSize int64) *OrganizationService {
	if maxLogoSize <= 0 {
		maxLogoSize = 2 << 20
	}
	return &OrganizationService{
		orgRepo:     orgRepo,
		store:       store,
		maxLogoSize: maxLogoSize,
	}
}

// OrganizationInput represents the create/update organization input
type OrganizationInput struct {
	Name          string
	Address       *string
	RegNo         *string
	TaxNo         *string
	ReceiptPrefix string
	ThankYouNote  *string
	LogoURL       *string
}

// Create creates an organization owned by the given user
func (s *OrganizationService) Create(ctx context.Context, userID uuid.UUID, input *OrganizationInput) (*entity.Organization, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Organization name is required"},
		})
	}

	org := &entity.Organization{
		UserID:        userID,
		Name:          input.Name,
		Address:       input.Address,
		RegNo:         input.RegNo,
		TaxNo:         input.TaxNo,
		ReceiptPrefix: input.ReceiptPrefix,
		ThankYouNote:  input.ThankYouNote,
		LogoURL:       input.LogoURL,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// Get returns an organization owned by the user
func (s *OrganizationService) Get(ctx context.Context, userID, orgID uuid.UUID) (*entity.Organization, error) {
	return s.getOwned(ctx, userID, orgID)
}

// List returns all organizations owned by the user
func (s *OrganizationService) List(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	return s.orgRepo.List(ctx, userID)
}

// Update updates an organization owned by the user
func (s *OrganizationService) Update(ctx context.Context, userID, orgID uuid.UUID, input *OrganizationInput) (*entity.Organization, error) {
	org, err := s.getOwned(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		org.Name = input.Name
	}
	if input.Address != nil {
		org.Address = input.Address
	}
	if input.RegNo != nil {
		org.RegNo = input.RegNo
	}
	if input.TaxNo != nil {
		org.TaxNo = input.TaxNo
	}
	if input.ReceiptPrefix != "" {
		org.ReceiptPrefix = input.ReceiptPrefix
	}
	if input.ThankYouNote != nil {
		org.ThankYouNote = input.ThankYouNote
	}
	if input.LogoURL != nil {
		org.LogoURL = input.LogoURL
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// Delete removes an organization owned by the user. Its stored logo is best
// effort cleaned up; issued receipts keep their PDFs.
func (s *OrganizationService) Delete(ctx context.Context, userID, orgID uuid.UUID) error {
	org, err := s.getOwned(ctx, userID, orgID)
	if err != nil {
		return err
	}

	if org.LogoPath != nil && *org.LogoPath != "" {
		_ = s.store.Delete(ctx, storage.BucketLogos, *org.LogoPath)
	}

	return s.orgRepo.Delete(ctx, org.ID)
}

// UploadLogo stores a PNG or JPEG logo for the organization and records its
// storage path. The stored logo takes precedence over LogoURL when rendering.
func (s *OrganizationService) UploadLogo(ctx context.Context, userID, orgID uuid.UUID, data []byte) (*entity.Organization, error) {
	org, err := s.getOwned(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, apperror.NewBadRequestError("Logo file is empty")
	}
	if int64(len(data)) > s.maxLogoSize {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Logo exceeds the maximum size of %d bytes", s.maxLogoSize))
	}

	contentType := http.DetectContentType(data)
	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, apperror.NewBadRequestError("Logo must be a PNG or JPEG image")
	}

	path := fmt.Sprintf("%s/logo.%s", org.ID, ext)
	if err := s.store.Put(ctx, storage.BucketLogos, path, bytes.NewReader(data), contentType); err != nil {
		return nil, err
	}

	// Drop a stale logo stored under the other extension
	if org.LogoPath != nil && *org.LogoPath != "" && *org.LogoPath != path {
		_ = s.store.Delete(ctx, storage.BucketLogos, *org.LogoPath)
	}

	org.LogoPath = &path
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// getOwned loads an organization and enforces ownership
func (s *OrganizationService) getOwned(ctx context.Context, userID, orgID uuid.UUID) (*entity.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}
	if org.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return org, nil
}
