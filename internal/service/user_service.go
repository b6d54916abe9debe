package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/model"
	"brian-crafts/backend/internal/policy"
	"brian-crafts/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrJobGroupNotFound = errors.New("工种组不存在")
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, callerRole string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, callerRole string, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error)
}

type userService struct {
	repo   *repository.Repository
	policy *policy.Policy
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, pol *policy.Policy, logger *zap.Logger) UserService {
	return &userService{repo: repo, policy: pol, logger: logger}
}

func (s *userService) Create(ctx context.Context, callerRole string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !s.policy.Can(callerRole, policy.OpCreateUser) {
		return nil, ErrNoPermission
	}

	// 指定了工种组时检查其存在
	if req.JobGroupID != nil {
		if _, err := s.repo.JobGroup.GetByID(ctx, *req.JobGroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrJobGroupNotFound
			}
			return nil, err
		}
	}

	role := req.Role
	if role == "" {
		role = model.RoleMember
	}

	user := &model.User{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Role:       role,
		JobGroupID: req.JobGroupID,
		DailyRate:  req.DailyRate,
		Status:     "active",
		TeamLeadID: req.TeamLeadID,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联数据（工种组）
	created, err := s.repo.User.GetByID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(created)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, callerRole string, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	if !s.policy.Can(callerRole, policy.OpListUsers) {
		return nil, 0, ErrNoPermission
	}

	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, total, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Role:       u.Role,
		JobGroupID: u.JobGroupID,
		DailyRate:  u.DailyRate,
		Status:     u.Status,
		TeamLeadID: u.TeamLeadID,
	}
	if u.JobGroup != nil {
		g := toJobGroupResponse(u.JobGroup)
		resp.JobGroup = &g
	}
	return resp
}
