package handler

import "brian-crafts/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	Attendance     *AttendanceHandler
	Report         *ReportHandler
	Export         *ExportHandler
	SafetyDocument *SafetyDocumentHandler
	User           *UserHandler
	JobGroup       *JobGroupHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		Attendance:     NewAttendanceHandler(svc.Attendance),
		Report:         NewReportHandler(svc.Report),
		Export:         NewExportHandler(svc.Export),
		SafetyDocument: NewSafetyDocumentHandler(svc.SafetyDocument),
		User:           NewUserHandler(svc.User),
		JobGroup:       NewJobGroupHandler(svc.JobGroup),
	}
}
