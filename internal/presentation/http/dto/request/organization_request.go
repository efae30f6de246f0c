package request

// CreateOrganizationRequest represents a create organization request
type CreateOrganizationRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Address       *string `json:"address"`
	RegNo         *string `json:"reg_no"`
	TaxNo         *string `json:"tax_no"`
	ReceiptPrefix string  `json:"receipt_prefix" binding:"omitempty,max=50"`
	ThankYouNote  *string `json:"thank_you_note"`
	LogoURL       *string `json:"logo_url" binding:"omitempty,url"`
}

// UpdateOrganizationRequest represents an update organization request.
// Omitted fields are left unchanged.
type UpdateOrganizationRequest struct {
	Name          string  `json:"name" binding:"omitempty,min=2,max=255"`
	Address       *string `json:"address"`
	RegNo         *string `json:"reg_no"`
	TaxNo         *string `json:"tax_no"`
	ReceiptPrefix string  `json:"receipt_prefix" binding:"omitempty,max=50"`
	ThankYouNote  *string `json:"thank_you_note"`
	LogoURL       *string `json:"logo_url" binding:"omitempty,url"`
}
