package routes

import (
	"net/http"

	"p3m-backend/app/model"
	"p3m-backend/app/service"
	"p3m-backend/middleware"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler adalah pengelola request workflow review.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// ReviewRoutes mendaftarkan endpoint review.
func ReviewRoutes(r *gin.Engine, s service.ReviewService) {
	h := &ReviewHandler{reviewService: s}

	g := r.Group("/api/v1/reviews")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("/", middleware.RequireRoles(model.RoleAdmin, model.RoleReviewer), h.Create)
		g.GET("/", h.List)
		// NOTE: urutan penting, /proposals dan /assign harus terdaftar
		// sebagai literal, bukan tertelan oleh /:id.
		g.GET("/proposals", middleware.RequireRoles(model.RoleAdmin, model.RoleReviewer), h.ReviewableProposals)
		g.POST("/assign", middleware.RequireRoles(model.RoleAdmin), h.Assign)
		g.GET("/:id", h.Detail)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", middleware.RequireRoles(model.RoleAdmin), h.Delete)
	}
}

// reviewInput adalah DTO create/update review.
type reviewInput struct {
	ProposalID  string   `json:"proposalId" binding:"required,uuid"`
	Skor        *float64 `json:"skor"`
	Catatan     string   `json:"catatan"`
	Rekomendasi string   `json:"rekomendasi" binding:"required,oneof=layak tidak_layak revisi"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	proposalID, err := uuid.Parse(input.ProposalID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format ID salah (harus UUID)"))
		return
	}

	review, err := h.reviewService.Create(actorID, role, service.ReviewInput{
		ProposalID:  proposalID,
		Skor:        input.Skor,
		Catatan:     input.Catatan,
		Rekomendasi: model.Rekomendasi(input.Rekomendasi),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Review berhasil disimpan", review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Skor        *float64 `json:"skor"`
		Catatan     string   `json:"catatan"`
		Rekomendasi string   `json:"rekomendasi" binding:"required,oneof=layak tidak_layak revisi"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	review, err := h.reviewService.Update(actorID, role, id, service.ReviewInput{
		Skor:        input.Skor,
		Catatan:     input.Catatan,
		Rekomendasi: model.Rekomendasi(input.Rekomendasi),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Review berhasil diperbarui", review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	_, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(role, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Review berhasil dihapus, proposal kembali ke submitted", nil))
}

// Assign menugaskan reviewer ke sebuah proposal (khusus admin).
func (h *ReviewHandler) Assign(c *gin.Context) {
	_, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	var input struct {
		ProposalID string `json:"proposalId" binding:"required,uuid"`
		ReviewerID string `json:"reviewerId" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	proposalID, err1 := uuid.Parse(input.ProposalID)
	reviewerID, err2 := uuid.Parse(input.ReviewerID)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format ID salah (harus UUID)"))
		return
	}

	proposal, err := h.reviewService.Assign(role, proposalID, reviewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Reviewer berhasil ditugaskan", proposal))
}

func (h *ReviewHandler) Detail(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Detail(actorID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail review", review))
}

func (h *ReviewHandler) List(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	page, limit := parsePagination(c)
	reviews, total, err := h.reviewService.List(actorID, role, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponsePaginated(
		"Berhasil mengambil daftar review", reviews, utils.NewPagination(page, limit, total)))
}

// ReviewableProposals: daftar proposal berstatus submitted/review.
func (h *ReviewHandler) ReviewableProposals(c *gin.Context) {
	page, limit := parsePagination(c)
	proposals, total, err := h.reviewService.ReviewableProposals(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponsePaginated(
		"Berhasil mengambil proposal siap review", proposals, utils.NewPagination(page, limit, total)))
}
