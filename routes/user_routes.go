package routes

import (
	"net/http"

	"p3m-backend/app/model"
	"p3m-backend/app/service"
	"p3m-backend/middleware"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler adalah pengelola request manajemen akun (khusus admin).
type UserHandler struct {
	userService service.UserService
}

// UserRoutes mendaftarkan endpoint manajemen user. Seluruh grup dibatasi
// allowlist admin karena tidak ada dimensi kepemilikan.
func UserRoutes(r *gin.Engine, s service.UserService) {
	h := &UserHandler{userService: s}

	g := r.Group("/api/v1/users")
	g.Use(middleware.AuthMiddleware(), middleware.RequireRoles(model.RoleAdmin))
	{
		g.GET("/", h.List)
		g.GET("/:id", h.Detail)
		g.POST("/", h.Create)
		g.PUT("/:id", h.Update)
		g.PUT("/:id/role", h.UpdateRole)
		g.DELETE("/:id", h.Deactivate)
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var input struct {
		Username string  `json:"username" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required,min=6"`
		FullName string  `json:"fullName" binding:"required"`
		Role     string  `json:"role" binding:"required,oneof=admin dosen mahasiswa reviewer"`
		NIDN     *string `json:"nidn"`
		NIM      *string `json:"nim"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	user, err := h.userService.Create(service.UserInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
		Role:     model.Role(input.Role),
		NIDN:     input.NIDN,
		NIM:      input.NIM,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("User berhasil dibuat", user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	user, err := h.userService.Update(id, input.FullName, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("User berhasil diperbarui", user))
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Role string  `json:"role" binding:"required,oneof=admin dosen mahasiswa reviewer"`
		NIDN *string `json:"nidn"`
		NIM  *string `json:"nim"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	user, err := h.userService.UpdateRole(id, model.Role(input.Role), input.NIDN, input.NIM)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Role user berhasil diperbarui", user))
}

// Deactivate melakukan soft-disable (akun tidak pernah dihapus permanen).
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("User berhasil dinonaktifkan", nil))
}

func (h *UserHandler) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Detail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail user", user))
}

func (h *UserHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userService.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponsePaginated(
		"Berhasil mengambil daftar user", users, utils.NewPagination(page, limit, total)))
}
