package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"brian-crafts/backend/internal/model"
	"brian-crafts/backend/internal/policy"
	"brian-crafts/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// 导出列与原 CSV 报表保持一致
var exportHeader = []string{"attendance_id", "user_id", "date", "signed", "approved_by", "remarks", "incident_flag"}

// ExportService 导出业务接口
//
// 三种格式消费同一份考勤行数据，以 bytes.Buffer 返回，
// 由 Handler 层设置下载响应头后写入 Response。
type ExportService interface {
	ExportCSV(ctx context.Context, callerRole string) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context, callerRole string) (*bytes.Buffer, string, error)
	ExportPDF(ctx context.Context, callerRole string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	policy *policy.Policy
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, pol *policy.Policy, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, policy: pol, logger: logger, now: time.Now}
}

func (s *exportService) load(ctx context.Context, callerRole string) ([]model.AttendanceRecord, error) {
	if !s.policy.Can(callerRole, policy.OpExportReports) {
		return nil, ErrNoPermission
	}
	records, err := s.repo.Attendance.List(ctx, nil, nil)
	if err != nil {
		s.logger.Error("查询导出数据失败", zap.Error(err))
		return nil, err
	}
	return records, nil
}

func (s *exportService) filename(ext string) string {
	return fmt.Sprintf("attendance_%s.%s", s.now().UTC().Format("20060102"), ext)
}

// ────────────────────── CSV ──────────────────────

func (s *exportService) ExportCSV(ctx context.Context, callerRole string) (*bytes.Buffer, string, error) {
	records, err := s.load(ctx, callerRole)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for i := range records {
		if err := w.Write(exportRow(&records[i])); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	return &buf, s.filename("csv"), nil
}

// ────────────────────── XLSX ──────────────────────

func (s *exportService) ExportXLSX(ctx context.Context, callerRole string) (*bytes.Buffer, string, error) {
	records, err := s.load(ctx, callerRole)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}
	for i := range records {
		for col, val := range exportRow(&records[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 文件失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, s.filename("xlsx"), nil
}

// ────────────────────── PDF ──────────────────────

func (s *exportService) ExportPDF(ctx context.Context, callerRole string) (*bytes.Buffer, string, error) {
	records, err := s.load(ctx, callerRole)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 10, "Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 9)
	for i := range records {
		r := &records[i]
		approvedBy := ""
		if r.ApprovedBy != nil {
			approvedBy = *r.ApprovedBy
		}
		line := fmt.Sprintf("%s | %s | %s | signed=%t | approved_by=%s",
			r.AttendanceID, r.UserID, r.AttDate.Format("2006-01-02"), r.Signed, approvedBy)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("生成 PDF 文件失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return &buf, s.filename("pdf"), nil
}

// ── helpers ──

func exportRow(r *model.AttendanceRecord) []string {
	approvedBy, remarks := "", ""
	if r.ApprovedBy != nil {
		approvedBy = *r.ApprovedBy
	}
	if r.Remarks != nil {
		remarks = *r.Remarks
	}
	return []string{
		r.AttendanceID,
		r.UserID,
		r.AttDate.Format("2006-01-02"),
		strconv.FormatBool(r.Signed),
		approvedBy,
		remarks,
		strconv.FormatBool(r.IncidentFlag),
	}
}
