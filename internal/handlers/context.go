package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
)

// currentUser returns the authenticated caller's claims, or nil when the
// request passed no auth middleware.
func currentUser(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated caller's user id, 0 when absent
func getUserIDFromContext(c echo.Context) uint {
	if claims := currentUser(c); claims != nil {
		return claims.UserID
	}
	return 0
}
