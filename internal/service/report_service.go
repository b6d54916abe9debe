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
)

// ReportService 报表业务接口
type ReportService interface {
	// Individual 个人考勤报表；成员仅可查本人，组长/管理员可查任意成员
	Individual(ctx context.Context, callerID, callerRole, userID string, start, end *time.Time) (*dto.IndividualReportResponse, error)
	// Team 团队考勤报表，按工种组分解
	Team(ctx context.Context, callerRole string, start, end *time.Time) (*dto.TeamReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	policy *policy.Policy
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, pol *policy.Policy, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, policy: pol, logger: logger}
}

// ────────────────────── Individual ──────────────────────

func (s *reportService) Individual(ctx context.Context, callerID, callerRole, userID string, start, end *time.Time) (*dto.IndividualReportResponse, error) {
	// 1. 鉴权：本人或具备查他人报表权限
	op := policy.OpViewAnyReport
	if callerID == userID {
		op = policy.OpViewOwnReport
	}
	if !s.policy.Can(callerRole, op) {
		return nil, ErrNoPermission
	}

	// 2. 聚合出勤
	records, err := s.repo.Attendance.ListByUser(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("查询个人考勤失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	var present int64
	dates := make(map[string]struct{}, len(records))
	for i := range records {
		dates[records[i].AttDate.Format("2006-01-02")] = struct{}{}
		if records[i].Signed {
			present++
		}
	}

	// 缺勤为"有记录的天数 − 出勤天数"的粗略近似（未对照应出勤日历），下限 0
	absent := int64(len(dates)) - present
	if absent < 0 {
		absent = 0
	}

	// 3. 日薪：User.DailyRate 覆盖，缺省回落到工种组；均无法解析时按 0 计
	totalPay := float64(present) * s.resolveDailyRate(ctx, userID)

	return &dto.IndividualReportResponse{
		UserID:       userID,
		TotalPresent: present,
		TotalAbsent:  absent,
		TotalPay:     totalPay,
	}, nil
}

// ────────────────────── Team ──────────────────────

func (s *reportService) Team(ctx context.Context, callerRole string, start, end *time.Time) (*dto.TeamReportResponse, error) {
	if !s.policy.Can(callerRole, policy.OpViewAnyReport) {
		return nil, ErrNoPermission
	}

	records, err := s.repo.Attendance.List(ctx, start, end)
	if err != nil {
		s.logger.Error("查询团队考勤失败", zap.Error(err))
		return nil, err
	}

	var total int64
	byGroup := make(map[string]int64)
	userCache := make(map[string]*model.User)

	for i := range records {
		if !records[i].Signed {
			continue
		}
		total++

		// 分组统计需要 考勤 → 用户 → 工种组 两级关联；
		// 无法解析的成员不计入分组，但保留在总数中
		user, ok := userCache[records[i].UserID]
		if !ok {
			u, err := s.repo.User.GetByID(ctx, records[i].UserID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					s.logger.Warn("解析考勤用户失败",
						zap.String("user_id", records[i].UserID),
						zap.Error(err),
					)
				}
				userCache[records[i].UserID] = nil
				continue
			}
			user = u
			userCache[records[i].UserID] = u
		}
		if user == nil || user.JobGroup == nil {
			continue
		}
		byGroup[user.JobGroup.Title]++
	}

	return &dto.TeamReportResponse{
		TotalPresent: total,
		ByGroup:      byGroup,
	}, nil
}

// ── helpers ──

// resolveDailyRate 解析日薪；用户不存在或无费率时返回 0 而非报错
func (s *reportService) resolveDailyRate(ctx context.Context, userID string) float64 {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("解析用户日薪失败", zap.String("user_id", userID), zap.Error(err))
		}
		return 0
	}
	if user.DailyRate != nil {
		return *user.DailyRate
	}
	if user.JobGroup != nil {
		return user.JobGroup.DailyRate
	}
	return 0
}
