// Package handler exposes the dashboard HTTP endpoints.
package handler

import (
	"net/http"
	"time"

	"opsboard_backend/internal/dashboard/ports"
	"opsboard_backend/internal/dashboard/service"
	"opsboard_backend/internal/dashboard/transport"
	"opsboard_backend/platform/apperr"
	"opsboard_backend/platform/httpkit"
	"opsboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the dashboard routes.
type Handler struct {
	svc       *service.Service
	val       *validator.Validator
	refresher ports.RefreshRequester
}

// New creates a dashboard handler. refresher may be nil; refresh requests
// then rebuild the snapshot inline instead of enqueueing a worker task.
func New(svc *service.Service, val *validator.Validator, refresher ports.RefreshRequester) *Handler {
	return &Handler{svc: svc, val: val, refresher: refresher}
}

// GetDashboard handles GET /api/v1/dashboard.
// Query params: at (RFC3339 reference instant, for reproducible snapshots)
// and refresh=true to bypass the cache.
func (h *Handler) GetDashboard(c *gin.Context) {
	at, bypass, err := h.parseQuery(c)
	if httpkit.HandleError(c, err) {
		return
	}

	dash, err := h.svc.Dashboard(c.Request.Context(), at, bypass)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, dash)
}

// GetAttention handles GET /api/v1/dashboard/attention. It returns only the
// attention list for callers that poll alerts without the full metrics body.
func (h *Handler) GetAttention(c *gin.Context) {
	at, bypass, err := h.parseQuery(c)
	if httpkit.HandleError(c, err) {
		return
	}

	dash, err := h.svc.Dashboard(c.Request.Context(), at, bypass)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"generatedAt": dash.Metrics.GeneratedAt,
		"attention":   dash.Attention,
	})
}

// RequestRefresh handles POST /api/v1/dashboard/refresh. With a background
// worker available the rebuild is enqueued and 202 returned; otherwise the
// snapshot is rebuilt inline and served.
func (h *Handler) RequestRefresh(c *gin.Context) {
	if h.refresher != nil {
		if err := h.refresher.RequestRefresh(c.Request.Context(), "api"); err != nil {
			httpkit.HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to enqueue refresh", err))
			return
		}
		httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "queued"})
		return
	}

	dash, err := h.svc.Refresh(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, dash)
}

func (h *Handler) parseQuery(c *gin.Context) (*time.Time, bool, error) {
	var q transport.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, false, apperr.Wrap(apperr.KindBadRequest, "invalid query parameters", err)
	}
	if err := h.val.Struct(q); err != nil {
		return nil, false, apperr.Wrap(apperr.KindValidation, "invalid query parameters", err)
	}

	var at *time.Time
	if q.At != "" {
		ts, err := time.Parse(time.RFC3339, q.At)
		if err != nil {
			return nil, false, apperr.Wrap(apperr.KindValidation, "'at' must be an RFC3339 timestamp", err)
		}
		at = &ts
	}

	return at, q.Refresh, nil
}
