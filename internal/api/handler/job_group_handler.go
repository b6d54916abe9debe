package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/service"
	"brian-crafts/backend/pkg/response"
)

// JobGroupHandler 工种组模块 HTTP 处理器
type JobGroupHandler struct {
	jobGroupSvc service.JobGroupService
}

// NewJobGroupHandler 创建 JobGroupHandler
func NewJobGroupHandler(jobGroupSvc service.JobGroupService) *JobGroupHandler {
	return &JobGroupHandler{jobGroupSvc: jobGroupSvc}
}

// CreateJobGroup 创建工种组（管理员）
// POST /api/v1/job-groups
func (h *JobGroupHandler) CreateJobGroup(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateJobGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	group, err := h.jobGroupSvc.Create(c.Request.Context(), role, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			response.Forbidden(c, 10003, "无权限访问")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, group)
}

// ListJobGroups 工种组列表
// GET /api/v1/job-groups
func (h *JobGroupHandler) ListJobGroups(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	groups, err := h.jobGroupSvc.List(c.Request.Context(), role)
	if err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			response.Forbidden(c, 10003, "无权限访问")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, groups)
}
