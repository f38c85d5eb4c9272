package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/middleware"
)

// sessionHandler handles session lifecycle requests.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
	journalService portssvc.JournalSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

func newSessionHandler(sessionService portssvc.SessionSvcFacade, journalService portssvc.JournalSvcFacade, balanceService portssvc.BalanceSvcFacade) *sessionHandler {
	return &sessionHandler{
		sessionService: sessionService,
		journalService: journalService,
		balanceService: balanceService,
	}
}

func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.sessionService.Open(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	// An unconfirmed opening-balance mismatch is not an error; the client
	// resubmits with confirmDiscrepancy set.
	if resp.RequiresConfirmation {
		c.JSON(http.StatusOK, resp)
		return
	}
	if resp.Connected {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *sessionHandler) connect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.Connect(c.Request.Context(), sessionID, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

func (h *sessionHandler) disconnect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	if err := h.sessionService.Disconnect(c.Request.Context(), sessionID, employeeID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "disconnected": true})
}

func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.sessionService.Close(c.Request.Context(), sessionID, req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *sessionHandler) forceCloseSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	var req dto.ForceCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for forceCloseSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	resp, err := h.sessionService.ForceClose(c.Request.Context(), sessionID, req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	session, connections, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	connResponses := make([]dto.ConnectionResponse, len(connections))
	for i := range connections {
		connResponses[i] = dto.ToConnectionResponse(&connections[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"session":     dto.ToSessionResponse(session),
		"connections": connResponses,
	})
}

func (h *sessionHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	balance, err := h.balanceService.ExpectedBalance(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{SessionID: sessionID, ExpectedBalance: balance})
}

func (h *sessionHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	entries, err := h.journalService.ListEntries(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	replayed, err := h.journalService.ReplayBalance(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionJournalResponse{
		SessionID:       sessionID,
		Entries:         dto.ToJournalEntryResponses(entries),
		ReplayedBalance: replayed,
	})
}

func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade, journalService portssvc.JournalSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := newSessionHandler(sessionService, journalService, balanceService)
	sessions := rg.Group("/sessions")
	{
		sessions.POST("/open", h.openSession)
		sessions.POST("/:sessionID/connect", h.connect)
		sessions.POST("/:sessionID/disconnect", h.disconnect)
		sessions.POST("/:sessionID/close", h.closeSession)
		sessions.POST("/:sessionID/force-close", h.forceCloseSession)
		sessions.GET("/:sessionID", h.getSession)
		sessions.GET("/:sessionID/balance", h.getBalance)
		sessions.GET("/:sessionID/journal", h.getJournal)
	}
}
