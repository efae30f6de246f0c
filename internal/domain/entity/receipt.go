package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is the persisted record of an issued donation receipt. The rendered
// PDF itself lives in the object store at PDFPath.
type Receipt struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	IssuedByID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"issued_by_id"`
	ReceiptNumber  string          `gorm:"size:100;uniqueIndex;not null" json:"receipt_number"`
	DateIssued     time.Time       `gorm:"type:date;not null" json:"date_issued"`
	DonorName      string          `gorm:"size:255;not null" json:"donor_name"`
	DonorEmail     *string         `gorm:"size:255" json:"donor_email,omitempty"`
	DonorPhone     *string         `gorm:"size:50" json:"donor_phone,omitempty"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaymentMethod  *string         `gorm:"size:50" json:"payment_method,omitempty"`
	Reference      *string         `gorm:"size:255" json:"reference,omitempty"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	PDFPath        string          `gorm:"size:255;not null;column:pdf_path" json:"pdf_path"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	IssuedBy     User         `gorm:"foreignKey:IssuedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptDocument is a value object pairing a freshly persisted receipt with
// its rendered PDF bytes. Ownership of the bytes transfers to the caller.
type ReceiptDocument struct {
	Receipt *Receipt
	PDF     []byte
}
