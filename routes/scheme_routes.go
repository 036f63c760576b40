package routes

import (
	"net/http"
	"time"

	"p3m-backend/app/model"
	"p3m-backend/app/service"
	"p3m-backend/middleware"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
)

// SchemeHandler adalah pengelola request skema pendanaan.
type SchemeHandler struct {
	schemeService service.SchemeService
}

// SchemeRoutes mendaftarkan endpoint skema: read untuk semua role
// terautentikasi (dibutuhkan saat menyusun proposal), CUD khusus admin.
func SchemeRoutes(r *gin.Engine, s service.SchemeService) {
	h := &SchemeHandler{schemeService: s}

	g := r.Group("/api/v1/schemes")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/", h.List)
		g.GET("/:id", h.Detail)
		g.POST("/", middleware.RequireRoles(model.RoleAdmin), h.Create)
		g.PUT("/:id", middleware.RequireRoles(model.RoleAdmin), h.Update)
		g.DELETE("/:id", middleware.RequireRoles(model.RoleAdmin), h.Delete)
	}
}

// schemeInput adalah DTO create/update skema. Tanggal dalam format RFC3339.
type schemeInput struct {
	Kode         string     `json:"kode" binding:"required"`
	Nama         string     `json:"nama" binding:"required"`
	Kategori     string     `json:"kategori" binding:"required,oneof=penelitian pengabdian hibah_internal hibah_eksternal"`
	DanaMin      float64    `json:"danaMin" binding:"gte=0"`
	DanaMax      float64    `json:"danaMax" binding:"gte=0"`
	TanggalBuka  time.Time  `json:"tanggalBuka" binding:"required"`
	TanggalTutup *time.Time `json:"tanggalTutup"`
	BatasAnggota int        `json:"batasAnggota" binding:"required,min=1"`
	Status       string     `json:"status" binding:"required,oneof=aktif nonaktif"`
}

func (in schemeInput) toServiceInput() service.SchemeInput {
	return service.SchemeInput{
		Kode:         in.Kode,
		Nama:         in.Nama,
		Kategori:     model.SchemeCategory(in.Kategori),
		DanaMin:      in.DanaMin,
		DanaMax:      in.DanaMax,
		TanggalBuka:  in.TanggalBuka,
		TanggalTutup: in.TanggalTutup,
		BatasAnggota: in.BatasAnggota,
		Status:       in.Status,
	}
}

func (h *SchemeHandler) Create(c *gin.Context) {
	var input schemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	scheme, err := h.schemeService.Create(input.toServiceInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Skema berhasil dibuat", scheme))
}

func (h *SchemeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input schemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	scheme, err := h.schemeService.Update(id, input.toServiceInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Skema berhasil diperbarui", scheme))
}

func (h *SchemeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.schemeService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Skema berhasil dihapus", nil))
}

func (h *SchemeHandler) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	scheme, err := h.schemeService.Detail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail skema", scheme))
}

func (h *SchemeHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	schemes, total, err := h.schemeService.List(page, limit, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponsePaginated(
		"Berhasil mengambil daftar skema", schemes, utils.NewPagination(page, limit, total)))
}
