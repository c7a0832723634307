package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
)

func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		claims, err := svc.ValidateToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if apperrors.IsCode(err, auth.CodeInvalidToken) {
				abortWithError(c, NewHTTPError(http.StatusUnauthorized, auth.CodeInvalidToken, "invalid or expired token", err))
				return
			}
			abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", "could not validate token", err))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}
