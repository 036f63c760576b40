package routes

import (
	"net/http"

	"p3m-backend/app/model"
	"p3m-backend/app/service"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler adalah pengelola request untuk fitur autentikasi.
type AuthHandler struct {
	authService service.AuthService
}

// AuthRoutes mendaftarkan endpoint autentikasi (tanpa middleware auth).
func AuthRoutes(r *gin.Engine, s service.AuthService) {
	h := &AuthHandler{authService: s}

	g := r.Group("/api/v1/auth")
	{
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
	}
}

// Register menangani pendaftaran mandiri (dosen/mahasiswa).
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Username string  `json:"username" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required,min=6"`
		FullName string  `json:"fullName" binding:"required"`
		Role     string  `json:"role" binding:"required,oneof=dosen mahasiswa"`
		NIDN     *string `json:"nidn"`
		NIM      *string `json:"nim"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	user, err := h.authService.Register(service.RegisterInput{
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

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Registrasi berhasil", user))
}

// Login menangani proses masuk dan penerbitan token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input login tidak valid"))
		return
	}

	user, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Login gagal"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	data := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"fullName": user.FullName,
			"role":     user.Role,
		},
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Login berhasil", data))
}
