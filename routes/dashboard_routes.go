package routes

import (
	"net/http"

	"p3m-backend/app/service"
	"p3m-backend/middleware"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler adalah pengelola request statistik.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// DashboardRoutes mendaftarkan endpoint statistik read-only.
func DashboardRoutes(r *gin.Engine, s service.DashboardService) {
	h := &DashboardHandler{dashboardService: s}

	g := r.Group("/api/v1/dashboard")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/statistics", h.Statistics)
	}
}

// Statistics mengembalikan ringkasan sesuai scope role:
// admin semua proposal; reviewer yang ditugaskan padanya; dosen/mahasiswa
// proposal yang mereka ketuai/ikuti.
func (h *DashboardHandler) Statistics(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	stats, err := h.dashboardService.Statistics(actorID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil statistik", stats))
}
