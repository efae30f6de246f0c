package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/application/service"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/dto/request"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/dto/response"
)

// OrganizationHandler handles organization-related HTTP requests
type OrganizationHandler struct {
	orgService *service.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// List handles listing the user's organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orgs, err := h.orgService.List(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Organizations retrieved successfully", gin.H{
		"organizations": orgs,
	})
}

// Create handles creating an organization
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), *userID, &service.OrganizationInput{
		Name:          req.Name,
		Address:       req.Address,
		RegNo:         req.RegNo,
		TaxNo:         req.TaxNo,
		ReceiptPrefix: req.ReceiptPrefix,
		ThankYouNote:  req.ThankYouNote,
		LogoURL:       req.LogoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Organization created successfully", gin.H{
		"organization": org,
	})
}

// Get handles fetching an organization
func (h *OrganizationHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	org, err := h.orgService.Get(c.Request.Context(), *userID, orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Organization retrieved successfully", gin.H{
		"organization": org,
	})
}

// Update handles updating an organization
func (h *OrganizationHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	var req request.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), *userID, orgID, &service.OrganizationInput{
		Name:          req.Name,
		Address:       req.Address,
		RegNo:         req.RegNo,
		TaxNo:         req.TaxNo,
		ReceiptPrefix: req.ReceiptPrefix,
		ThankYouNote:  req.ThankYouNote,
		LogoURL:       req.LogoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Organization updated successfully", gin.H{
		"organization": org,
	})
}

// Delete handles deleting an organization
func (h *OrganizationHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), *userID, orgID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Organization deleted successfully", nil)
}

// UploadLogo handles uploading an organization logo
func (h *OrganizationHandler) UploadLogo(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		response.BadRequest(c, "A logo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read logo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Failed to read logo file")
		return
	}

	org, err := h.orgService.UploadLogo(c.Request.Context(), *userID, orgID, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Logo uploaded successfully", gin.H{
		"organization": org,
	})
}
