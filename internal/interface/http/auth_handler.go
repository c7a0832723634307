package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

// Register creates a member account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	member, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshToken issues a new token pair from a refresh token.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated member.
func (h *Handler) Me(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	member, err := h.authSvc.Profile(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// SaveBirth stores the member's birth input.
func (h *Handler) SaveBirth(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var birth saju.BirthInput
	if err := c.ShouldBindJSON(&birth); err != nil {
		badRequest(c, err)
		return
	}
	member, err := h.authSvc.SaveBirth(c.Request.Context(), id, birth)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}
