package request

// UpdateSettingsRequest represents a partial settings update. Omitted fields
// are left unchanged.
type UpdateSettingsRequest struct {
	Language           *string `json:"language" binding:"omitempty,max=10"`
	Timezone           *string `json:"timezone" binding:"omitempty,max=50"`
	DateFormat         *string `json:"date_format" binding:"omitempty,max=20"`
	CurrencyPrefix     *string `json:"currency_prefix" binding:"omitempty,max=10"`
	DefaultPayMethod   *string `json:"default_pay_method" binding:"omitempty,max=50"`
	EmailNotifications *bool   `json:"email_notifications"`
	NotifyDonors       *bool   `json:"notify_donors"`
	Theme              *string `json:"theme" binding:"omitempty,oneof=light dark"`
}
