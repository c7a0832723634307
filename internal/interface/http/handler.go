package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	fortuneSvc fortune.Service
	authSvc    auth.Service
	ticketSvc  ticket.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(fortuneSvc fortune.Service, authSvc auth.Service, ticketSvc ticket.Service, logger *slog.Logger) *Handler {
	return &Handler{
		fortuneSvc: fortuneSvc,
		authSvc:    authSvc,
		ticketSvc:  ticketSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Analyze returns a full reading for the posted birth input.
func (h *Handler) Analyze(c *gin.Context) {
	var req fortune.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.fortuneSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard returns today's cached fortune view.
func (h *Handler) Dashboard(c *gin.Context) {
	var req fortune.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.fortuneSvc.Dashboard(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshDashboard rebuilds today's view, bypassing the cache.
func (h *Handler) RefreshDashboard(c *gin.Context) {
	var req fortune.DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.fortuneSvc.Refresh(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Calendar returns day scores for one month.
func (h *Handler) Calendar(c *gin.Context) {
	var req fortune.CalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.fortuneSvc.Calendar(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuickPick draws numbers from the current (or requested) hour branch.
func (h *Handler) QuickPick(c *gin.Context) {
	var req fortune.QuickPickRequest
	if raw := c.Query("hour"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		req.Hour = &hour
	}
	resp, err := h.fortuneSvc.QuickPick(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopNumbers lists the most recommended numbers.
func (h *Handler) TopNumbers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		limit = parsed
	}
	items, err := h.fortuneSvc.TopNumbers(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numbers": items})
}

// MyDashboard builds today's view from the member's saved birth input.
func (h *Handler) MyDashboard(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	profile, err := h.authSvc.Profile(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if profile.Birth == nil {
		abortWithError(c, NewHTTPError(http.StatusConflict, "birth_required", "save your birth information first", nil))
		return
	}
	resp, err := h.fortuneSvc.Dashboard(c.Request.Context(), fortune.DashboardRequest{BirthInput: *profile.Birth})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
