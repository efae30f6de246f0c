package request

import "github.com/shopspring/decimal"

// CreateReceiptRequest represents a create receipt request
type CreateReceiptRequest struct {
	OrganizationID string          `json:"organization_id" binding:"required,uuid"`
	DonorName      string          `json:"donor_name" binding:"required,min=2,max=255"`
	DonorEmail     *string         `json:"donor_email" binding:"omitempty,email"`
	DonorPhone     *string         `json:"donor_phone" binding:"omitempty,max=50"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod  *string         `json:"payment_method" binding:"omitempty,max=50"`
	Reference      *string         `json:"reference" binding:"omitempty,max=255"`
	Notes          *string         `json:"notes"`
	// DateIssued is an optional YYYY-MM-DD date, defaulting to today.
	DateIssued string `json:"date_issued" binding:"omitempty,datetime=2006-01-02"`
}
