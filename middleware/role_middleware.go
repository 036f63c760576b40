package middleware

import (
	"net/http"

	"p3m-backend/app/model"
	"p3m-backend/app/policy"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles membatasi endpoint ke allowlist role statis, dipakai untuk
// endpoint tanpa dimensi kepemilikan (misal hanya admin yang membuat skema).
// Cek kepemilikan yang lebih halus tetap terjadi di service lewat policy.
func RequireRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleI, ok := c.Get("role")
		if !ok {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Autentikasi dibutuhkan"))
			c.Abort()
			return
		}

		role, _ := roleI.(model.Role)
		if !policy.RoleAllowed(role, allowed...) {
			c.JSON(http.StatusForbidden,
				utils.BuildResponseFailed("Role anda tidak diizinkan mengakses fitur ini"))
			c.Abort()
			return
		}

		c.Next()
	}
}
