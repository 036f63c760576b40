package routes

import (
	"net/http"

	"p3m-backend/app/model"
	"p3m-backend/app/service"
	"p3m-backend/middleware"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
)

// AnnouncementHandler adalah pengelola request pengumuman.
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

// AnnouncementRoutes: read semua role, CUD khusus admin.
func AnnouncementRoutes(r *gin.Engine, s service.AnnouncementService) {
	h := &AnnouncementHandler{announcementService: s}

	g := r.Group("/api/v1/announcements")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/", h.List)
		g.GET("/:id", h.Detail)
		g.POST("/", middleware.RequireRoles(model.RoleAdmin), h.Create)
		g.PUT("/:id", middleware.RequireRoles(model.RoleAdmin), h.Update)
		g.DELETE("/:id", middleware.RequireRoles(model.RoleAdmin), h.Delete)
	}
}

type announcementInput struct {
	Judul string `json:"judul" binding:"required"`
	Isi   string `json:"isi" binding:"required"`
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	actorID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	var input announcementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	a, err := h.announcementService.Create(actorID, input.Judul, input.Isi)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Pengumuman berhasil dibuat", a))
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input announcementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	a, err := h.announcementService.Update(id, input.Judul, input.Isi)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Pengumuman berhasil diperbarui", a))
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Pengumuman berhasil dihapus", nil))
}

func (h *AnnouncementHandler) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.announcementService.Detail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil pengumuman", a))
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.announcementService.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponsePaginated(
		"Berhasil mengambil daftar pengumuman", list, utils.NewPagination(page, limit, total)))
}
