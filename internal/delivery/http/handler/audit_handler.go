package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainAudit "admin-dashboard/internal/domain/audit"
	auditUsecase "admin-dashboard/internal/usecase/audit"
	"admin-dashboard/pkg/utils"
)

type AuditHandler struct {
	service *auditUsecase.Service
}

func NewAuditHandler(service *auditUsecase.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", h.List)
}

func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	params := domainAudit.ListParams{
		Page:   page,
		Limit:  limit,
		Entity: c.Query("entity"),
	}

	if rawUserID := c.Query("user_id"); rawUserID != "" {
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
			return
		}
		params.UserID = &userID
	}

	logs, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totalPages := (total + int64(params.Limit) - 1) / int64(params.Limit)

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"data":       logs,
		"total":      total,
		"page":       params.Page,
		"limit":      params.Limit,
		"totalPages": totalPages,
	})
}
