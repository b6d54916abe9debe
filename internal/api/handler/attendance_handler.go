package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/service"
	"brian-crafts/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Sign 签到
// POST /api/v1/attendance/sign
func (h *AttendanceHandler) Sign(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.attendanceSvc.Sign(c.Request.Context(), userID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySigned):
			response.BadRequest(c, 12001, "今日已签到")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权代他人签到")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, record)
}

// Approve 审批签到记录
// POST /api/v1/attendance/approve
func (h *AttendanceHandler) Approve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.attendanceSvc.Approve(c.Request.Context(), userID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttendanceNotFound):
			response.NotFound(c, 12002, "考勤记录不存在")
		case errors.Is(err, service.ErrAlreadyApproved):
			response.BadRequest(c, 12003, "该记录已审批")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权限访问")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, record)
}

// ListToday 当日全员考勤
// GET /api/v1/attendance/today
func (h *AttendanceHandler) ListToday(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	records, err := h.attendanceSvc.ListToday(c.Request.Context(), role)
	if err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			response.Forbidden(c, 10003, "无权限访问")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, records)
}
