package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"brian-crafts/backend/internal/service"
	"brian-crafts/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// CSV 导出考勤为 CSV
// GET /api/v1/export/attendance.csv
func (h *ExportHandler) CSV(c *gin.Context) {
	h.serve(c, h.exportSvc.ExportCSV, "text/csv")
}

// XLSX 导出考勤为 Excel
// GET /api/v1/export/attendance.xlsx
func (h *ExportHandler) XLSX(c *gin.Context) {
	h.serve(c, h.exportSvc.ExportXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// PDF 导出考勤为 PDF
// GET /api/v1/export/attendance.pdf
func (h *ExportHandler) PDF(c *gin.Context) {
	h.serve(c, h.exportSvc.ExportPDF, "application/pdf")
}

func (h *ExportHandler) serve(c *gin.Context, export func(context.Context, string) (*bytes.Buffer, string, error), contentType string) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	buf, filename, err := export(c.Request.Context(), role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "无权限访问")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
