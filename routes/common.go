package routes

import (
	"log"
	"net/http"
	"strconv"

	"p3m-backend/app/model"
	"p3m-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// identity mengambil userID + role yang disimpan AuthMiddleware.
func identity(c *gin.Context) (uuid.UUID, model.Role, bool) {
	idI, ok1 := c.Get("userID")
	roleI, ok2 := c.Get("role")
	if !ok1 || !ok2 {
		return uuid.Nil, "", false
	}
	id, ok1 := idI.(uuid.UUID)
	role, ok2 := roleI.(model.Role)
	return id, role, ok1 && ok2
}

// respondError memetakan error domain ke status HTTP + envelope standar.
// Error 500 tidak membocorkan detail internal; penyebab asli masuk ke log.
func respondError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, utils.BuildResponseFailed(utils.UserMessage(err)))
}

// parsePagination membaca ?page & ?limit dengan default yang aman.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// parseIDParam mengurai path param menjadi uuid; false kalau formatnya salah.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)"))
		return uuid.Nil, false
	}
	return id, true
}
