package service

import (
	"context"

	"go.uber.org/zap"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/model"
	"brian-crafts/backend/internal/policy"
	"brian-crafts/backend/internal/repository"
)

// JobGroupService 工种组业务接口
type JobGroupService interface {
	Create(ctx context.Context, callerRole string, req *dto.CreateJobGroupRequest) (*dto.JobGroupResponse, error)
	List(ctx context.Context, callerRole string) ([]dto.JobGroupResponse, error)
}

type jobGroupService struct {
	repo   *repository.Repository
	policy *policy.Policy
	logger *zap.Logger
}

// NewJobGroupService 创建 JobGroupService 实例
func NewJobGroupService(repo *repository.Repository, pol *policy.Policy, logger *zap.Logger) JobGroupService {
	return &jobGroupService{repo: repo, policy: pol, logger: logger}
}

func (s *jobGroupService) Create(ctx context.Context, callerRole string, req *dto.CreateJobGroupRequest) (*dto.JobGroupResponse, error) {
	if !s.policy.Can(callerRole, policy.OpCreateJobGroup) {
		return nil, ErrNoPermission
	}

	group := &model.JobGroup{
		Title:     req.Title,
		DailyRate: req.DailyRate,
		Allowance: req.Allowance,
	}
	if err := s.repo.JobGroup.Create(ctx, group); err != nil {
		s.logger.Error("创建工种组失败", zap.Error(err))
		return nil, err
	}

	resp := toJobGroupResponse(group)
	return &resp, nil
}

func (s *jobGroupService) List(ctx context.Context, callerRole string) ([]dto.JobGroupResponse, error) {
	if !s.policy.Can(callerRole, policy.OpListJobGroups) {
		return nil, ErrNoPermission
	}

	groups, err := s.repo.JobGroup.List(ctx)
	if err != nil {
		s.logger.Error("查询工种组列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.JobGroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toJobGroupResponse(&groups[i]))
	}
	return out, nil
}

func toJobGroupResponse(g *model.JobGroup) dto.JobGroupResponse {
	return dto.JobGroupResponse{
		JobGroupID: g.JobGroupID,
		Title:      g.Title,
		DailyRate:  g.DailyRate,
		Allowance:  g.Allowance,
	}
}
