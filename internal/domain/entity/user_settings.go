package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSettings represents user-specific application settings
type UserSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// General settings
	Language   string `gorm:"size:10;default:'en'" json:"language"`
	Timezone   string `gorm:"size:50;default:'Africa/Johannesburg'" json:"timezone"`
	DateFormat string `gorm:"size:20;default:'YYYY-MM-DD'" json:"date_format"`

	// Receipt settings
	CurrencyPrefix   string `gorm:"size:10;default:'R'" json:"currency_prefix"`
	DefaultPayMethod string `gorm:"size:50;default:'EFT'" json:"default_pay_method"`

	// Notification settings
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	NotifyDonors       bool `gorm:"default:true" json:"notify_donors"`

	// Appearance settings
	Theme string `gorm:"size:20;default:'light'" json:"theme"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UserSettings model
func (UserSettings) TableName() string {
	return "user_settings"
}
