package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/munimji/munim_backend/internal/apperrors"
	portssvc "github.com/munimji/munim_backend/internal/core/ports/services"
	"github.com/munimji/munim_backend/internal/dto"
	"github.com/munimji/munim_backend/internal/middleware"
)

// allocationHandler handles HTTP requests related to payment allocations.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

// newAllocationHandler creates a new allocationHandler.
func newAllocationHandler(as portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{
		allocationService: as,
	}
}

// registerAllocationRoutes registers routes related to payment allocations.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.DELETE("/:allocationID", h.deleteAllocation)
		allocations.POST("/quick-payment", h.createQuickPayment)
	}
}

// createAllocation godoc
// @Summary Allocate a settlement against an invoice
// @Description Applies part of a payment or receipt voucher against an invoice and recomputes the invoice payment status
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} map[string]string "Invalid input, incompatible voucher types, or over-allocation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create allocation"
// @Security BearerAuth
// @Router /allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAllocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating allocation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create allocation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create allocation"})
		}
		return
	}

	logger.Info("Allocation created", slog.String("allocation_id", allocation.AllocationID))
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocations godoc
// @Summary List allocations for a voucher
// @Description Retrieves allocations filtered by invoice voucher or by settlement voucher; exactly one filter is required
// @Tags allocations
// @Produce json
// @Param invoiceVoucherID query string false "Invoice voucher ID"
// @Param paymentVoucherID query string false "Payment/receipt voucher ID"
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list allocations"
// @Security BearerAuth
// @Router /allocations [get]
func (h *allocationHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAllocationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listAllocations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	hasInvoice := params.InvoiceVoucherID != nil && *params.InvoiceVoucherID != ""
	hasPayment := params.PaymentVoucherID != nil && *params.PaymentVoucherID != ""
	if hasInvoice == hasPayment {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide exactly one of invoiceVoucherID or paymentVoucherID"})
		return
	}

	if hasInvoice {
		result, err := h.allocationService.ListAllocationsByInvoice(c.Request.Context(), *params.InvoiceVoucherID)
		if err != nil {
			logger.Error("Failed to list allocations by invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
			return
		}
		c.JSON(http.StatusOK, dto.ListAllocationsResponse{Allocations: dto.ToListAllocationResponse(result)})
		return
	}

	result, err := h.allocationService.ListAllocationsByPayment(c.Request.Context(), *params.PaymentVoucherID)
	if err != nil {
		logger.Error("Failed to list allocations by payment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
		return
	}
	c.JSON(http.StatusOK, dto.ListAllocationsResponse{Allocations: dto.ToListAllocationResponse(result)})
}

// deleteAllocation godoc
// @Summary Delete an allocation
// @Description Removes an allocation and recomputes the invoice payment status
// @Tags allocations
// @Produce json
// @Param allocationID path string true "Allocation ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to delete allocation"
// @Security BearerAuth
// @Router /allocations/{allocationID} [delete]
func (h *allocationHandler) deleteAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	allocationID := c.Param("allocationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.allocationService.DeleteAllocation(c.Request.Context(), allocationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Allocation not found for deletion", slog.String("allocation_id", allocationID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else {
			logger.Error("Failed to delete allocation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete allocation"})
		}
		return
	}

	logger.Info("Allocation deleted", slog.String("allocation_id", allocationID))
	c.Status(http.StatusNoContent)
}

// createQuickPayment godoc
// @Summary Settle an invoice in one step
// @Description Creates the settling payment or receipt voucher and its allocation in a single transaction
// @Tags allocations
// @Accept json
// @Produce json
// @Param quickPayment body dto.QuickPaymentRequest true "Quick payment details"
// @Success 201 {object} dto.QuickPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or over-allocation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create quick payment"
// @Security BearerAuth
// @Router /allocations/quick-payment [post]
func (h *allocationHandler) createQuickPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.QuickPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createQuickPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, allocation, err := h.allocationService.CreateQuickPayment(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating quick payment", slog.String("invoice_voucher_id", req.InvoiceVoucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create quick payment in service", slog.String("invoice_voucher_id", req.InvoiceVoucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quick payment"})
		}
		return
	}

	logger.Info("Quick payment created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("allocation_id", allocation.AllocationID),
	)
	c.JSON(http.StatusCreated, dto.QuickPaymentResponse{
		Voucher:    dto.ToVoucherResponse(voucher, nil, nil),
		Allocation: dto.ToAllocationResponse(allocation),
	})
}
