package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/model"
	"brian-crafts/backend/internal/policy"
	"brian-crafts/backend/internal/repository"
	pkgerrors "brian-crafts/backend/pkg/errors"
)

// ── 考勤模块业务错误 ──

var (
	ErrAlreadySigned      = errors.New("今日已签到")
	ErrAlreadyApproved    = errors.New("该记录已审批")
	ErrAttendanceNotFound = errors.New("考勤记录不存在")
)

// AttendanceService 考勤业务接口
//
// 状态机：未签到 → 已签到（approved_by 为空）→ 已审批（终态）。
// 每人每天至多一条记录；审批恰好发生一次。
type AttendanceService interface {
	// Sign 签到。req.UserID 为空时为本人签到，否则按代签权限处理
	Sign(ctx context.Context, callerID, callerRole string, req *dto.SignRequest) (*dto.AttendanceResponse, error)
	// Approve 审批已签到记录，终态转移
	Approve(ctx context.Context, callerID, callerRole string, req *dto.ApproveRequest) (*dto.AttendanceResponse, error)
	// ListToday 当日全员考勤（组长/管理员）
	ListToday(ctx context.Context, callerRole string) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	policy *policy.Policy
	logger *zap.Logger
	now    func() time.Time // 测试中可替换
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, pol *policy.Policy, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, policy: pol, logger: logger, now: time.Now}
}

// ────────────────────── Sign ──────────────────────

func (s *attendanceService) Sign(ctx context.Context, callerID, callerRole string, req *dto.SignRequest) (*dto.AttendanceResponse, error) {
	// 1. 确定签到对象并鉴权（先鉴权后写入）
	targetID := callerID
	if req.UserID != "" && req.UserID != callerID {
		if !s.policy.Can(callerRole, policy.OpSignOnBehalf) {
			return nil, ErrNoPermission
		}
		targetID = req.UserID
	} else if !s.policy.Can(callerRole, policy.OpSignSelf) {
		return nil, ErrNoPermission
	}

	now := s.now().UTC()
	record := &model.AttendanceRecord{
		UserID:       targetID,
		AttDate:      dateOnly(now),
		Signed:       true,
		SignatureURL: req.SignatureURL,
		SignedAt:     now,
		DeviceInfo:   req.DeviceInfo,
		Location:     req.Location,
	}

	// 2. 原子创建；(user_id, att_date) 唯一索引兜底并发重复签到
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySigned
		}
		s.logger.Error("创建考勤记录失败",
			zap.String("user_id", targetID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ────────────────────── Approve ──────────────────────

func (s *attendanceService) Approve(ctx context.Context, callerID, callerRole string, req *dto.ApproveRequest) (*dto.AttendanceResponse, error) {
	// 1. 鉴权
	if !s.policy.Can(callerRole, policy.OpApprove) {
		return nil, ErrNoPermission
	}

	// 2. 条件更新：仅当 approved_by 为空时写入；并发审批只允许一方成功
	now := s.now().UTC()
	err := s.repo.Attendance.Approve(ctx, req.AttendanceID, callerID, now, req.Remarks, req.IncidentFlag)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrConditionFailed) {
			// 未命中任何行：区分"不存在"与"已审批"
			if _, getErr := s.repo.Attendance.GetByID(ctx, req.AttendanceID); getErr != nil {
				if errors.Is(getErr, gorm.ErrRecordNotFound) {
					return nil, ErrAttendanceNotFound
				}
				return nil, getErr
			}
			return nil, ErrAlreadyApproved
		}
		s.logger.Error("审批考勤记录失败",
			zap.String("attendance_id", req.AttendanceID),
			zap.Error(err),
		)
		return nil, err
	}

	// 3. 返回更新后的记录
	record, err := s.repo.Attendance.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return nil, err
	}
	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ────────────────────── ListToday ──────────────────────

func (s *attendanceService) ListToday(ctx context.Context, callerRole string) ([]dto.AttendanceResponse, error) {
	if !s.policy.Can(callerRole, policy.OpListToday) {
		return nil, ErrNoPermission
	}

	records, err := s.repo.Attendance.ListByDate(ctx, dateOnly(s.now().UTC()))
	if err != nil {
		s.logger.Error("查询当日考勤失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, toAttendanceResponse(&records[i]))
	}
	return out, nil
}

// ── helpers ──

// dateOnly 截取日历日期（UTC，零点）
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toAttendanceResponse(r *model.AttendanceRecord) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		AttendanceID: r.AttendanceID,
		UserID:       r.UserID,
		Date:         r.AttDate.Format("2006-01-02"),
		Signed:       r.Signed,
		SignatureURL: r.SignatureURL,
		SignedAt:     r.SignedAt,
		DeviceInfo:   r.DeviceInfo,
		Location:     r.Location,
		ApprovedBy:   r.ApprovedBy,
		ApprovedAt:   r.ApprovedAt,
		Remarks:      r.Remarks,
		IncidentFlag: r.IncidentFlag,
	}
}
