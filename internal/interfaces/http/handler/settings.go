package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appsettings "github.com/a7delivery/backend/internal/application/settings"
	"github.com/a7delivery/backend/internal/interfaces/http/dto"
)

// SettingsHandler handles tenant credential endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *appsettings.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *appsettings.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settingsService.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appsettings.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid settings payload")
		return
	}

	resp, err := h.settingsService.UpdateSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TestSource handles POST /api/v1/settings/test-source
func (h *SettingsHandler) TestSource(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settingsService.TestSourceConnection(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TestDelivery handles POST /api/v1/settings/test-delivery
func (h *SettingsHandler) TestDelivery(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settingsService.TestDeliveryConnection(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
