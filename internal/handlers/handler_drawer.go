package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/dto"
	"github.com/oakpos/cashdesk/internal/middleware"
)

// drawerHandler handles drawer configuration requests.
type drawerHandler struct {
	drawerService portssvc.DrawerSvcFacade
}

func newDrawerHandler(drawerService portssvc.DrawerSvcFacade) *drawerHandler {
	return &drawerHandler{drawerService: drawerService}
}

func (h *drawerHandler) createDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDrawer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	drawer, err := h.drawerService.CreateDrawer(c.Request.Context(), req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDrawerResponse(drawer))
}

func (h *drawerHandler) getDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	drawerID := c.Param("drawerID")

	drawer, err := h.drawerService.GetDrawer(c.Request.Context(), drawerID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDrawerResponse(drawer))
}

func (h *drawerHandler) listDrawers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	storeID := c.Query("storeID")
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storeID query parameter is required"})
		return
	}

	drawers, err := h.drawerService.ListDrawers(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	responses := make([]dto.DrawerResponse, len(drawers))
	for i := range drawers {
		responses[i] = dto.ToDrawerResponse(&drawers[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *drawerHandler) updateDrawer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	drawerID := c.Param("drawerID")

	var req dto.UpdateDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateDrawer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	employeeID, ok := requireEmployeeID(c, logger)
	if !ok {
		return
	}

	drawer, err := h.drawerService.UpdateDrawer(c.Request.Context(), drawerID, req, employeeID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDrawerResponse(drawer))
}

func registerDrawerRoutes(rg *gin.RouterGroup, drawerService portssvc.DrawerSvcFacade) {
	h := newDrawerHandler(drawerService)
	drawers := rg.Group("/drawers")
	{
		drawers.POST("", h.createDrawer)
		drawers.GET("", h.listDrawers)
		drawers.GET("/:drawerID", h.getDrawer)
		drawers.PUT("/:drawerID", h.updateDrawer)
	}
}
