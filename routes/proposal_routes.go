package routes

import (
	"io"
	"net/http"

	"p3m-backend/app/model"
	"p3m-backend/app/service"
	"p3m-backend/middleware"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProposalHandler adalah pengelola request siklus hidup proposal.
type ProposalHandler struct {
	proposalService service.ProposalService
}

// ProposalRoutes mendaftarkan endpoint proposal. Semua endpoint wajib JWT;
// allowlist role hanya untuk operasi tanpa dimensi kepemilikan; cek
// kepemilikan detail terjadi di service.
func ProposalRoutes(r *gin.Engine, s service.ProposalService) {
	h := &ProposalHandler{proposalService: s}

	g := r.Group("/api/v1/proposals")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("/", middleware.RequireRoles(model.RoleAdmin, model.RoleDosen, model.RoleMahasiswa), h.Create)
		g.GET("/", h.List)
		g.GET("/:id", h.Detail)
		g.PUT("/:id", h.Update)
		g.POST("/:id/submit", h.Submit)
		g.DELETE("/:id", h.Delete)
		g.PATCH("/:id/complete", middleware.RequireRoles(model.RoleAdmin), h.Complete)

		g.POST("/:id/documents", h.AddDocument)
		g.GET("/:id/documents/:docId/download", h.DownloadDocument)
		g.DELETE("/:id/documents/:docId", h.DeleteDocument)
	}
}

// proposalInput adalah DTO create/update proposal.
type proposalInput struct {
	Judul         string   `json:"judul" binding:"required"`
	Abstrak       string   `json:"abstrak" binding:"required"`
	KataKunci     string   `json:"kataKunci"`
	SchemeID      string   `json:"schemeId" binding:"required,uuid"`
	Tahun         int      `json:"tahun" binding:"required"`
	DanaDiusulkan *float64 `json:"danaDiusulkan"`
	MemberIDs     []string `json:"memberIds"`
}

func (in proposalInput) toServiceInput() (service.ProposalInput, error) {
	schemeID, err := uuid.Parse(in.SchemeID)
	if err != nil {
		return service.ProposalInput{}, err
	}
	memberIDs := make([]uuid.UUID, 0, len(in.MemberIDs))
	for _, raw := range in.MemberIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return service.ProposalInput{}, err
		}
		memberIDs = append(memberIDs, id)
	}
	return service.ProposalInput{
		Judul:         in.Judul,
		Abstrak:       in.Abstrak,
		KataKunci:     in.KataKunci,
		SchemeID:      schemeID,
		Tahun:         in.Tahun,
		DanaDiusulkan: in.DanaDiusulkan,
		MemberIDs:     memberIDs,
	}, nil
}

func (h *ProposalHandler) Create(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	var input proposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	in, err := input.toServiceInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format ID salah (harus UUID)"))
		return
	}

	proposal, err := h.proposalService.Create(actorID, role, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Proposal berhasil dibuat", proposal))
}

func (h *ProposalHandler) List(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	page, limit := parsePagination(c)
	proposals, total, err := h.proposalService.List(actorID, role, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponsePaginated(
		"Berhasil mengambil daftar proposal", proposals, utils.NewPagination(page, limit, total)))
}

func (h *ProposalHandler) Detail(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	proposal, err := h.proposalService.Detail(actorID, role, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail proposal", proposal))
}

func (h *ProposalHandler) Update(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input proposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	in, err := input.toServiceInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format ID salah (harus UUID)"))
		return
	}

	proposal, err := h.proposalService.Update(actorID, role, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Proposal berhasil diperbarui", proposal))
}

func (h *ProposalHandler) Submit(c *gin.Context) {
	actorID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	proposal, err := h.proposalService.Submit(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Proposal berhasil diajukan", proposal))
}

func (h *ProposalHandler) Delete(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.proposalService.Delete(c.Request.Context(), actorID, role, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Proposal berhasil dihapus", nil))
}

func (h *ProposalHandler) Complete(c *gin.Context) {
	_, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	proposal, err := h.proposalService.Complete(role, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Proposal berhasil diselesaikan", proposal))
}

// AddDocument menerima multipart upload: field "file" + form "nama"/"tipe".
func (h *ProposalHandler) AddDocument(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.BuildResponseFailed("File dokumen wajib dilampirkan"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, err)
		return
	}

	nama := c.PostForm("nama")
	if nama == "" {
		nama = fileHeader.Filename
	}

	doc, err := h.proposalService.AddDocument(c.Request.Context(), actorID, role, id, service.DocumentUpload{
		Nama:     nama,
		Tipe:     c.PostForm("tipe"),
		FileName: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.BuildResponseSuccess("Dokumen berhasil diunggah", doc))
}

func (h *ProposalHandler) DownloadDocument(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "docId")
	if !ok {
		return
	}

	doc, blob, err := h.proposalService.DownloadDocument(c.Request.Context(), actorID, role, id, docID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+blob.FileName+"\"")
	c.Data(http.StatusOK, contentTypeFor(doc.Tipe), blob.Data)
}

func (h *ProposalHandler) DeleteDocument(c *gin.Context) {
	actorID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.BuildResponseFailed("Autentikasi dibutuhkan"))
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "docId")
	if !ok {
		return
	}

	if err := h.proposalService.DeleteDocument(c.Request.Context(), actorID, role, id, docID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.BuildResponseSuccess("Dokumen berhasil dihapus", nil))
}

func contentTypeFor(tipe string) string {
	switch tipe {
	case "pdf":
		return "application/pdf"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}
