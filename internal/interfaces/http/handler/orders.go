package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apporder "github.com/a7delivery/backend/internal/application/order"
	"github.com/a7delivery/backend/internal/interfaces/http/dto"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService    *apporder.OrderService
	syncService     *apporder.SyncService
	dispatchService *apporder.DispatchService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orderService *apporder.OrderService,
	syncService *apporder.SyncService,
	dispatchService *apporder.DispatchService,
) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		syncService:     syncService,
		dispatchService: dispatchService,
	}
}

// List handles GET /api/v1/orders?status=&limit=
func (h *OrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), tenantID, c.Query("status"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, int64(len(orders)))
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	orderID := uuid.MustParse(req.ID)

	resp, err := h.orderService.GetOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PATCH /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	orderID := uuid.MustParse(idReq.ID)

	var req apporder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid update payload")
		return
	}

	resp, err := h.orderService.UpdateOrder(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Stats handles GET /api/v1/orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.orderService.GetStats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Sync handles POST /api/v1/orders/sync
func (h *OrderHandler) Sync(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.syncService.SyncOrders(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Dispatch handles POST /api/v1/orders/dispatch
func (h *OrderHandler) Dispatch(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apporder.DispatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid dispatch payload")
			return
		}
	}

	result, err := h.dispatchService.DispatchOrders(c.Request.Context(), tenantID, req.OrderIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
