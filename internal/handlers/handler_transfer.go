package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/middleware"
)

// transferHandler handles money movement requests.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: transferService}
}

func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.transferService.Transfer(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *transferHandler) bankDeposit(c *gin.Context) {
	h.bankMovement(c, h.transferService.BankDeposit)
}

func (h *transferHandler) bankWithdrawal(c *gin.Context) {
	h.bankMovement(c, h.transferService.BankWithdrawal)
}

func (h *transferHandler) bankMovement(c *gin.Context, movement func(ctx context.Context, req dto.BankMovementRequest, employeeID string) (*dto.AdjustmentResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BankMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bank movement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := movement(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *transferHandler) pettyCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for pettyCash", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.transferService.PettyCashPayout(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *transferHandler) adjust(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ManualAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjust", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.transferService.Adjust(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *transferHandler) interStoreSend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InterStoreSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for interStoreSend", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.transferService.InterStoreSend(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *transferHandler) interStoreReceive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	var req dto.InterStoreReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for interStoreReceive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.transferService.InterStoreReceive(c.Request.Context(), transferID, req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *transferHandler) interStoreVoid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.transferService.InterStoreVoid(c.Request.Context(), transferID, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *transferHandler) listPendingInterStore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	storeID := c.Query("storeID")
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storeID query parameter is required"})
		return
	}

	transfers, err := h.transferService.ListPendingInterStore(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, transfers)
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)
	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.transfer)
		transfers.POST("/bank-deposit", h.bankDeposit)
		transfers.POST("/bank-withdrawal", h.bankWithdrawal)
		transfers.POST("/petty-cash", h.pettyCash)
		transfers.POST("/adjustments", h.adjust)
		transfers.POST("/inter-store/send", h.interStoreSend)
		transfers.POST("/inter-store/:transferID/receive", h.interStoreReceive)
		transfers.POST("/inter-store/:transferID/void", h.interStoreVoid)
		transfers.GET("/inter-store/pending", h.listPendingInterStore)
	}
}
