package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/application/service"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	"github.com/zragie/ngo-receipts-api/internal/domain/repository"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/dto/request"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/dto/response"
	"github.com/zragie/ngo-receipts-api/pkg/pagination"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles issuing a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		response.BadRequest(c, "Invalid organization ID")
		return
	}

	input := &service.CreateReceiptInput{
		OrganizationID: orgID,
		DonorName:      req.DonorName,
		DonorEmail:     req.DonorEmail,
		DonorPhone:     req.DonorPhone,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		Reference:      req.Reference,
		Notes:          req.Notes,
	}
	if req.DateIssued != "" {
		dateIssued, err := time.Parse("2006-01-02", req.DateIssued)
		if err != nil {
			response.BadRequest(c, "Invalid date_issued, expected YYYY-MM-DD")
			return
		}
		input.DateIssued = dateIssued
	}

	doc, err := h.receiptService.Create(c.Request.Context(), *userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt issued successfully", gin.H{
		"receipt":      doc.Receipt,
		"download_url": fmt.Sprintf("/api/v1/receipts/%s/pdf", doc.Receipt.ID),
	})
}

// List handles listing receipts (supports both page-based and cursor-based pagination)
func (h *ReceiptHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	filter := repository.ReceiptFilter{Search: c.Query("search")}
	if orgIDStr := c.Query("organization_id"); orgIDStr != "" {
		orgID, err := uuid.Parse(orgIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid organization ID")
			return
		}
		filter.OrganizationID = &orgID
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, *userID, filter)
		return
	}

	// Default to page-based pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()

	receipts, total, err := h.receiptService.List(c.Request.Context(), *userID, params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// listWithCursor handles listing receipts with cursor-based pagination
func (h *ReceiptHandler) listWithCursor(c *gin.Context, userID uuid.UUID, filter repository.ReceiptFilter) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}
	params.Validate()

	receipts, err := h.receiptService.ListWithCursor(c.Request.Context(), userID, params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	cursorPagination, receipts := pagination.NewCursorPagination(receipts, params.Limit,
		func(r entity.Receipt) string { return r.ID.String() },
		func(r entity.Receipt) time.Time { return r.CreatedAt },
	)

	response.Success(c, 200, "Receipts retrieved successfully", pagination.NewCursorPaginatedResult(receipts, cursorPagination))
}

// Get handles fetching a receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.Get(c.Request.Context(), *userID, receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", gin.H{
		"receipt": receipt,
	})
}

// DownloadPDF streams the rendered receipt document
func (h *ReceiptHandler) DownloadPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	doc, err := h.receiptService.GetDocument(c.Request.Context(), *userID, receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Receipt.ReceiptNumber+".pdf"))
	c.Data(200, "application/pdf", doc.PDF)
}

// Delete handles deleting a receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), *userID, receiptID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt deleted successfully", nil)
}
