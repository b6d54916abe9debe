package service

import (
	"errors"

	"go.uber.org/zap"

	"brian-crafts/backend/config"
	"brian-crafts/backend/internal/policy"
	"brian-crafts/backend/internal/repository"
	"brian-crafts/backend/pkg/jwt"
)

// ErrNoPermission 角色不具备所请求操作的权限（鉴权先于任何写入）
var ErrNoPermission = errors.New("无权操作")

// Service 所有 Service 的聚合入口
type Service struct {
	Auth           AuthService
	Attendance     AttendanceService
	Report         ReportService
	Export         ExportService
	SafetyDocument SafetyDocumentService
	User           UserService
	JobGroup       JobGroupService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	otpStore OTPStore,
	logger *zap.Logger,
) *Service {
	pol := policy.New(cfg.Feature.TeamLeadSignOnBehalf)

	return &Service{
		Auth:           NewAuthService(cfg, repo, jwtMgr, otpStore, logger),
		Attendance:     NewAttendanceService(repo, pol, logger),
		Report:         NewReportService(repo, pol, logger),
		Export:         NewExportService(repo, pol, logger),
		SafetyDocument: NewSafetyDocumentService(repo, pol, logger),
		User:           NewUserService(repo, pol, logger),
		JobGroup:       NewJobGroupService(repo, pol, logger),
	}
}
