package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
)

const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

// memberID reads the authenticated member or aborts with 401.
func memberID(c *gin.Context) (int64, bool) {
	claims, ok := getClaims(c)
	if !ok || claims.MemberID == 0 {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "authentication required", nil))
		return 0, false
	}
	return claims.MemberID, true
}
