package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/service"
	"brian-crafts/backend/pkg/response"
)

// SafetyDocumentHandler 安全文档模块 HTTP 处理器
type SafetyDocumentHandler struct {
	safetyDocSvc service.SafetyDocumentService
}

// NewSafetyDocumentHandler 创建 SafetyDocumentHandler
func NewSafetyDocumentHandler(safetyDocSvc service.SafetyDocumentService) *SafetyDocumentHandler {
	return &SafetyDocumentHandler{safetyDocSvc: safetyDocSvc}
}

// Create 发布安全文档
// POST /api/v1/safety-docs
func (h *SafetyDocumentHandler) Create(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateSafetyDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	doc, err := h.safetyDocSvc.Create(c.Request.Context(), role, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			response.Forbidden(c, 10003, "无权限访问")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, doc)
}

// GetToday 当日最新安全文档
// GET /api/v1/safety-docs/today
func (h *SafetyDocumentHandler) GetToday(c *gin.Context) {
	doc, err := h.safetyDocSvc.GetToday(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 当日无文档时 data 为空
	response.OK(c, doc)
}
