package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/service"
	"brian-crafts/backend/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Individual 个人考勤报表
// GET /api/v1/reports/individual/:user_id?start=&end=
func (h *ReportHandler) Individual(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	targetID := c.Param("user_id")
	if targetID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Individual(c.Request.Context(), callerID, role, targetID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			response.Forbidden(c, 10003, "无权查看他人报表")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// Team 团队考勤报表
// GET /api/v1/reports/team?start=&end=
func (h *ReportHandler) Team(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Team(c.Request.Context(), role, start, end)
	if err != nil {
		if errors.Is(err, service.ErrNoPermission) {
			response.Forbidden(c, 10003, "无权限访问")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// bindDateRange 解析可选日期区间；格式非法时写入 400 并返回 ok=false
func bindDateRange(c *gin.Context) (start, end *time.Time, ok bool) {
	var rng dto.DateRangeRequest
	if err := c.ShouldBindQuery(&rng); err != nil {
		response.BadRequest(c, 10001, "日期格式应为 YYYY-MM-DD")
		return nil, nil, false
	}

	if rng.Start != "" {
		t, _ := time.ParseInLocation("2006-01-02", rng.Start, time.UTC)
		start = &t
	}
	if rng.End != "" {
		t, _ := time.ParseInLocation("2006-01-02", rng.End, time.UTC)
		end = &t
	}
	return start, end, true
}
