package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	"github.com/zragie/ngo-receipts-api/internal/domain/repository"
	"github.com/zragie/ngo-receipts-api/internal/infrastructure/storage"
	"github.com/zragie/ngo-receipts-api/pkg/apperror"
	"github.com/zragie/ngo-receipts-api/pkg/pagination"
)

type fakeReceiptRepo struct {
	byID      map[uuid.UUID]*entity.Receipt
	byNumber  map[string]*entity.Receipt
	failFirst int // reject this many inserts as duplicates
	creates   int
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{
		byID:     make(map[uuid.UUID]*entity.Receipt),
		byNumber: make(map[string]*entity.Receipt),
	}
}

func (r *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	r.creates++
	if r.creates <= r.failFirst {
		return repository.ErrDuplicateReceiptNumber
	}
	if _, exists := r.byNumber[receipt.ReceiptNumber]; exists {
		return repository.ErrDuplicateReceiptNumber
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	stored := *receipt
	r.byID[receipt.ID] = &stored
	r.byNumber[receipt.ReceiptNumber] = &stored
	return nil
}

func (r *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return r.byID[id], nil
}

func (r *fakeReceiptRepo) GetByNumber(ctx context.Context, number string) (*entity.Receipt, error) {
	return r.byNumber[number], nil
}

func (r *fakeReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if receipt, ok := r.byID[id]; ok {
		delete(r.byNumber, receipt.ReceiptNumber)
		delete(r.byID, id)
	}
	return nil
}

func (r *fakeReceiptRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, filter repository.ReceiptFilter) ([]entity.Receipt, int64, error) {
	receipts := make([]entity.Receipt, 0)
	for _, receipt := range r.byID {
		if receipt.IssuedByID == userID {
			receipts = append(receipts, *receipt)
		}
	}
	return receipts, int64(len(receipts)), nil
}

func (r *fakeReceiptRepo) ListWithCursor(ctx context.Context, userID uuid.UUID, params *pagination.CursorParams, filter repository.ReceiptFilter) ([]entity.Receipt, error) {
	receipts, _, err := r.List(ctx, userID, nil, filter)
	return receipts, err
}

type fakeOrgRepo struct {
	orgs map[uuid.UUID]*entity.Organization
}

func (r *fakeOrgRepo) Create(ctx context.Context, org *entity.Organization) error { return nil }
func (r *fakeOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	return r.orgs[id], nil
}
func (r *fakeOrgRepo) Update(ctx context.Context, org *entity.Organization) error { return nil }
func (r *fakeOrgRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }
func (r *fakeOrgRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.Organization, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetByProviderID(ctx context.Context, provider, providerID string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

type fakeSettingsRepo struct {
	settings map[uuid.UUID]*entity.UserSettings
}

func (r *fakeSettingsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	return r.settings[userID], nil
}
func (r *fakeSettingsRepo) Create(ctx context.Context, settings *entity.UserSettings) error {
	if r.settings == nil {
		r.settings = make(map[uuid.UUID]*entity.UserSettings)
	}
	r.settings[settings.UserID] = settings
	return nil
}
func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.UserSettings) error {
	r.settings[settings.UserID] = settings
	return nil
}

type nilLogoResolver struct{}

func (nilLogoResolver) Fetch(ctx context.Context, org *entity.Organization) []byte { return nil }

type receiptFixture struct {
	service     *ReceiptService
	receiptRepo *fakeReceiptRepo
	store       *storage.DiskStore
	userID      uuid.UUID
	orgID       uuid.UUID
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	userID := uuid.New()
	orgID := uuid.New()

	receiptRepo := newFakeReceiptRepo()
	orgRepo := &fakeOrgRepo{orgs: map[uuid.UUID]*entity.Organization{
		orgID: {ID: orgID, UserID: userID, Name: "Hope Foundation", ReceiptPrefix: "REC-"},
	}}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		userID: {ID: userID, FirstName: "Thandi", LastName: "Nkosi", Email: "thandi@example.org"},
	}}
	settingsRepo := &fakeSettingsRepo{settings: map[uuid.UUID]*entity.UserSettings{
		userID: {UserID: userID, CurrencyPrefix: "R", DefaultPayMethod: "EFT"},
	}}

	svc := NewReceiptService(receiptRepo, orgRepo, userRepo, settingsRepo, store, nilLogoResolver{}, nil, nil, "R")

	return &receiptFixture{
		service:     svc,
		receiptRepo: receiptRepo,
		store:       store,
		userID:      userID,
		orgID:       orgID,
	}
}

func TestReceiptServiceCreate(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	dateIssued := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	doc, err := f.service.Create(ctx, f.userID, &CreateReceiptInput{
		OrganizationID: f.orgID,
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromFloat(250),
		DateIssued:     dateIssued,
	})
	require.NoError(t, err)
	require.NotNil(t, doc.Receipt)

	assert.Regexp(t, regexp.MustCompile(`^REC-20250314-\d{5}$`), doc.Receipt.ReceiptNumber)
	assert.Equal(t, "EFT", *doc.Receipt.PaymentMethod)
	assert.True(t, len(doc.PDF) > 0)
	assert.Equal(t, "%PDF", string(doc.PDF[:4]))
	assert.Contains(t, string(doc.PDF), doc.Receipt.ReceiptNumber)
	assert.Contains(t, string(doc.PDF), "Amount: R 250.00")

	// PDF was stored under the organization's directory
	stored, err := f.store.Get(ctx, storage.BucketReceipts, f.orgID.String()+"/"+doc.Receipt.ReceiptNumber+".pdf")
	require.NoError(t, err)
	assert.Equal(t, doc.PDF, stored)
}

func TestReceiptServiceCreateValidation(t *testing.T) {
	f := newReceiptFixture(t)

	_, err := f.service.Create(context.Background(), f.userID, &CreateReceiptInput{
		OrganizationID: f.orgID,
		DonorName:      "",
		Amount:         decimal.Zero,
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Errors, 2)
	assert.Zero(t, f.receiptRepo.creates)
}

func TestReceiptServiceCreateUnknownOrganization(t *testing.T) {
	f := newReceiptFixture(t)

	_, err := f.service.Create(context.Background(), f.userID, &CreateReceiptInput{
		OrganizationID: uuid.New(),
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestReceiptServiceCreateForbiddenOrganization(t *testing.T) {
	f := newReceiptFixture(t)

	_, err := f.service.Create(context.Background(), uuid.New(), &CreateReceiptInput{
		OrganizationID: f.orgID,
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestReceiptServiceCreateRetriesDuplicateNumber(t *testing.T) {
	f := newReceiptFixture(t)
	f.receiptRepo.failFirst = 2

	doc, err := f.service.Create(context.Background(), f.userID, &CreateReceiptInput{
		OrganizationID: f.orgID,
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, f.receiptRepo.creates)

	// Only the winning attempt's PDF remains in storage
	_, err = f.store.Get(context.Background(), storage.BucketReceipts, doc.Receipt.PDFPath)
	assert.NoError(t, err)
}

func TestReceiptServiceGetDocument(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	doc, err := f.service.Create(ctx, f.userID, &CreateReceiptInput{
		OrganizationID: f.orgID,
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	fetched, err := f.service.GetDocument(ctx, f.userID, doc.Receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.PDF, fetched.PDF)

	// Another user cannot download it
	_, err = f.service.GetDocument(ctx, uuid.New(), doc.Receipt.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestReceiptServiceDelete(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	doc, err := f.service.Create(ctx, f.userID, &CreateReceiptInput{
		OrganizationID: f.orgID,
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, f.userID, doc.Receipt.ID))

	_, err = f.store.Get(ctx, storage.BucketReceipts, doc.Receipt.PDFPath)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = f.service.Get(ctx, f.userID, doc.Receipt.ID)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestReceiptServiceCustomPrefixAndCurrency(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	orgID := uuid.New()
	f.service.orgRepo.(*fakeOrgRepo).orgs[orgID] = &entity.Organization{
		ID: orgID, UserID: f.userID, Name: "Ubuntu Trust", ReceiptPrefix: "UBT-",
	}
	f.service.settingsRepo.(*fakeSettingsRepo).settings[f.userID].CurrencyPrefix = "ZAR"

	doc, err := f.service.Create(ctx, f.userID, &CreateReceiptInput{
		OrganizationID: orgID,
		DonorName:      "Jane Donor",
		Amount:         decimal.NewFromFloat(19.995),
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^UBT-\d{8}-\d{5}$`), doc.Receipt.ReceiptNumber)
	assert.Contains(t, string(doc.PDF), "Amount: ZAR 20.00")
}
