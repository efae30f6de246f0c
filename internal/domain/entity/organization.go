package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zragie/ngo-receipts-api/pkg/receiptno"
)

// Organization represents an NGO that issues donation receipts
type Organization struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	RegNo         *string        `gorm:"size:100;column:reg_no" json:"reg_no,omitempty"`
	TaxNo         *string        `gorm:"size:100;column:tax_no" json:"tax_no,omitempty"`
	ReceiptPrefix string         `gorm:"size:50;default:'REC-'" json:"receipt_prefix"`
	ThankYouNote  *string        `gorm:"type:text" json:"thank_you_note,omitempty"`
	LogoPath      *string        `gorm:"size:255" json:"logo_path,omitempty"`
	LogoURL       *string        `gorm:"size:500;column:logo_url" json:"logo_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Receipts []Receipt `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new organization
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}

// Prefix returns the configured receipt prefix, or the default when unset.
func (o *Organization) Prefix() string {
	if o.ReceiptPrefix == "" {
		return receiptno.DefaultPrefix
	}
	return o.ReceiptPrefix
}
