package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
)

// ListTickets returns the member's saved tickets.
func (h *Handler) ListTickets(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	tickets, err := h.ticketSvc.List(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// SaveTicket stores a new ticket.
func (h *Handler) SaveTicket(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var req ticket.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.ticketSvc.Save(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteTicket removes one of the member's tickets.
func (h *Handler) DeleteTicket(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	if err := h.ticketSvc.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckTickets compares the member's tickets with the latest draw.
func (h *Handler) CheckTickets(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	report, err := h.ticketSvc.Check(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RecordDraw stores an official draw result.
func (h *Handler) RecordDraw(c *gin.Context) {
	var req ticket.Draw
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.ticketSvc.RecordDraw(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// LatestDraw returns the most recent draw.
func (h *Handler) LatestDraw(c *gin.Context) {
	d, err := h.ticketSvc.LatestDraw(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
