package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	"github.com/zragie/ngo-receipts-api/internal/domain/repository"
	"github.com/zragie/ngo-receipts-api/internal/infrastructure/storage"
	"github.com/zragie/ngo-receipts-api/pkg/apperror"
	"github.com/zragie/ngo-receipts-api/pkg/email"
	"github.com/zragie/ngo-receipts-api/pkg/money"
	"github.com/zragie/ngo-receipts-api/pkg/pagination"
	"github.com/zragie/ngo-receipts-api/pkg/receiptno"
	"github.com/zragie/ngo-receipts-api/pkg/receiptpdf"
)

// maxNumberRetries bounds how many times a colliding receipt number is
// regenerated before giving up.
const maxNumberRetries = 3

// LogoResolver resolves an organization's logo bytes, or nil when none is
// available.
type LogoResolver interface {
	Fetch(ctx context.Context, org *entity.Organization) []byte
}

// ReceiptService issues donation receipts: it generates the receipt number,
// renders the PDF, stores it and records the receipt row.
type ReceiptService struct {
	receiptRepo     repository.ReceiptRepository
	orgRepo         repository.OrganizationRepository
	userRepo        repository.UserRepository
	settingsRepo    repository.SettingsRepository
	store           storage.ObjectStore
	logos           LogoResolver
	emailService    *email.EmailService
	brandColor      *receiptpdf.RGB
	defaultCurrency string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	store storage.ObjectStore,
	logos LogoResolver,
	emailService *email.EmailService,
	brandColor *receiptpdf.RGB,
	defaultCurrency string,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:     receiptRepo,
		orgRepo:         orgRepo,
		userRepo:        userRepo,
		settingsRepo:    settingsRepo,
		store:           store,
		logos:           logos,
		emailService:    emailService,
		brandColor:      brandColor,
		defaultCurrency: defaultCurrency,
	}
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	OrganizationID uuid.UUID
	DonorName      string
	DonorEmail     *string
	DonorPhone     *string
	Amount         decimal.Decimal
	PaymentMethod  *string
	Reference      *string
	Notes          *string
	// DateIssued defaults to today when zero.
	DateIssued time.Time
}

// Create issues a receipt: validates the input, generates a unique receipt
// number, renders and stores the PDF, and persists the receipt row. The
// returned document carries the freshly rendered PDF bytes.
func (s *ReceiptService) Create(ctx context.Context, userID uuid.UUID, input *CreateReceiptInput) (*entity.ReceiptDocument, error) {
	fieldErrors := make([]apperror.FieldError, 0)
	if input.DonorName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "donor_name", Message: "Donor name is required"})
	}
	if !input.Amount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	org, err := s.orgRepo.GetByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}
	if org.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	issuer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if issuer == nil {
		return nil, apperror.ErrNotFound
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dateIssued := input.DateIssued
	if dateIssued.IsZero() {
		dateIssued = time.Now()
	}

	receipt := &entity.Receipt{
		OrganizationID: org.ID,
		IssuedByID:     userID,
		DateIssued:     dateIssued,
		DonorName:      input.DonorName,
		DonorEmail:     input.DonorEmail,
		DonorPhone:     input.DonorPhone,
		Amount:         input.Amount.Round(2),
		PaymentMethod:  input.PaymentMethod,
		Reference:      input.Reference,
		Notes:          input.Notes,
	}
	if receipt.PaymentMethod == nil && settings != nil && settings.DefaultPayMethod != "" {
		method := settings.DefaultPayMethod
		receipt.PaymentMethod = &method
	}

	composer := s.composerFor(settings)
	logo := s.logos.Fetch(ctx, org)

	// The random suffix makes collisions rare; regenerate and retry when the
	// unique index rejects a number anyway.
	var pdfBytes []byte
	for attempt := 0; ; attempt++ {
		receipt.ReceiptNumber = receiptno.GenerateAt(org.Prefix(), dateIssued)

		pdfBytes, err = composer.Compose(s.receiptData(org, issuer, receipt, logo))
		if err != nil {
			return nil, apperror.ErrReceiptRender
		}

		receipt.PDFPath = receipt.OrganizationID.String() + "/" + receipt.ReceiptNumber + ".pdf"
		if err := s.store.Put(ctx, storage.BucketReceipts, receipt.PDFPath, bytes.NewReader(pdfBytes), "application/pdf"); err != nil {
			return nil, err
		}

		err = s.receiptRepo.Create(ctx, receipt)
		if err == nil {
			break
		}

		_ = s.store.Delete(ctx, storage.BucketReceipts, receipt.PDFPath)
		if !errors.Is(err, repository.ErrDuplicateReceiptNumber) || attempt >= maxNumberRetries {
			return nil, err
		}
	}

	s.notifyDonor(settings, org, receipt)

	receipt.Organization = *org
	return &entity.ReceiptDocument{Receipt: receipt, PDF: pdfBytes}, nil
}

// Get returns a receipt issued by the user
func (s *ReceiptService) Get(ctx context.Context, userID, receiptID uuid.UUID) (*entity.Receipt, error) {
	return s.getOwned(ctx, userID, receiptID)
}

// GetDocument returns a receipt together with its stored PDF bytes
func (s *ReceiptService) GetDocument(ctx context.Context, userID, receiptID uuid.UUID) (*entity.ReceiptDocument, error) {
	receipt, err := s.getOwned(ctx, userID, receiptID)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := s.store.Get(ctx, storage.BucketReceipts, receipt.PDFPath)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Receipt document")
	}
	if err != nil {
		return nil, err
	}

	return &entity.ReceiptDocument{Receipt: receipt, PDF: pdfBytes}, nil
}

// List returns the user's receipt history with page-based pagination
func (s *ReceiptService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, filter repository.ReceiptFilter) ([]entity.Receipt, int64, error) {
	return s.receiptRepo.List(ctx, userID, params, filter)
}

// ListWithCursor returns the user's receipt history with cursor-based pagination
func (s *ReceiptService) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, filter repository.ReceiptFilter) ([]entity.Receipt, error) {
	return s.receiptRepo.ListWithCursor(ctx, userID, params, filter)
}

// Delete removes a receipt and its stored PDF
func (s *ReceiptService) Delete(ctx context.Context, userID, receiptID uuid.UUID) error {
	receipt, err := s.getOwned(ctx, userID, receiptID)
	if err != nil {
		return err
	}

	if err := s.receiptRepo.Delete(ctx, receipt.ID); err != nil {
		return err
	}

	_ = s.store.Delete(ctx, storage.BucketReceipts, receipt.PDFPath)
	return nil
}

func (s *ReceiptService) getOwned(ctx context.Context, userID, receiptID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.IssuedByID != userID {
		return nil, apperror.ErrForbidden
	}
	return receipt, nil
}

// composerFor builds a composer honoring the user's currency preference.
func (s *ReceiptService) composerFor(settings *entity.UserSettings) *receiptpdf.Composer {
	opts := receiptpdf.Options{
		BrandColor:     s.brandColor,
		CurrencyPrefix: s.defaultCurrency,
	}
	if settings != nil && settings.CurrencyPrefix != "" {
		opts.CurrencyPrefix = settings.CurrencyPrefix
	}
	return receiptpdf.NewComposer(opts)
}

func (s *ReceiptService) receiptData(org *entity.Organization, issuer *entity.User, receipt *entity.Receipt, logo []byte) receiptpdf.ReceiptData {
	data := receiptpdf.ReceiptData{
		Organization: receiptpdf.Organization{
			Name:         org.Name,
			Address:      deref(org.Address),
			RegNo:        deref(org.RegNo),
			TaxNo:        deref(org.TaxNo),
			ThankYouNote: deref(org.ThankYouNote),
		},
		Donation: receiptpdf.Donation{
			DonorName:     receipt.DonorName,
			DonorEmail:    deref(receipt.DonorEmail),
			DonorPhone:    deref(receipt.DonorPhone),
			Amount:        receipt.Amount,
			PaymentMethod: deref(receipt.PaymentMethod),
			Reference:     deref(receipt.Reference),
			Notes:         deref(receipt.Notes),
			DateIssued:    receipt.DateIssued,
		},
		ReceiptNumber: receipt.ReceiptNumber,
		IssuedBy:      issuer.FullName(),
		Logo:          logo,
	}
	return data
}

// notifyDonor emails the donor about their new receipt when the issuer has
// donor notifications enabled. Failures never fail the issue operation.
func (s *ReceiptService) notifyDonor(settings *entity.UserSettings, org *entity.Organization, receipt *entity.Receipt) {
	if s.emailService == nil || receipt.DonorEmail == nil || *receipt.DonorEmail == "" {
		return
	}
	if settings == nil || !settings.NotifyDonors || !settings.EmailNotifications {
		return
	}

	currency := s.defaultCurrency
	if settings.CurrencyPrefix != "" {
		currency = settings.CurrencyPrefix
	}
	formatter := money.NewFormatter(currency)

	notification := email.ReceiptNotification{
		DonorName:     receipt.DonorName,
		DonorEmail:    *receipt.DonorEmail,
		OrgName:       org.Name,
		ReceiptNumber: receipt.ReceiptNumber,
		Amount:        formatter.Format(receipt.Amount),
		DateIssued:    receipt.DateIssued.Format("2006-01-02"),
	}

	go func() {
		_ = s.emailService.SendReceiptIssuedEmail(notification)
	}()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
