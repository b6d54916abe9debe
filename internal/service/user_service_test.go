package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/model"
	"brian-crafts/backend/internal/policy"
	"brian-crafts/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockUserRepo, *mockJobGroupRepo) {
	userRepo := newMockUserRepo()
	groupRepo := newMockJobGroupRepo()
	repo := &repository.Repository{
		User:           userRepo,
		JobGroup:       groupRepo,
		Attendance:     newMockAttendanceRepo(),
		SafetyDocument: newMockSafetyDocRepo(),
	}
	svc := NewUserService(repo, policy.New(false), zap.NewNop())
	return svc, userRepo, groupRepo
}

// ── Create 测试 ──

func TestUserService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestUserService()

	result, err := svc.Create(context.Background(), "admin", &dto.CreateUserRequest{
		Name:  "张三",
		Email: "zhangsan@example.com",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "张三" {
		t.Errorf("期望Name=张三，实际=%s", result.Name)
	}
	if result.Role != model.RoleMember {
		t.Errorf("缺省角色应为member，实际=%s", result.Role)
	}
	if result.Status != "active" {
		t.Errorf("期望Status=active，实际=%s", result.Status)
	}
}

func TestUserService_Create_WithJobGroup(t *testing.T) {
	svc, _, groupRepo := setupTestUserService()
	groupRepo.groups["grp-001"] = &model.JobGroup{JobGroupID: "grp-001", Title: "木工", DailyRate: 150}

	gid := "grp-001"
	result, err := svc.Create(context.Background(), "admin", &dto.CreateUserRequest{
		Name:       "李四",
		Role:       "team_lead",
		JobGroupID: &gid,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Role != "team_lead" {
		t.Errorf("期望Role=team_lead，实际=%s", result.Role)
	}
	if result.JobGroupID == nil || *result.JobGroupID != "grp-001" {
		t.Errorf("期望JobGroupID=grp-001，实际=%v", result.JobGroupID)
	}
}

func TestUserService_Create_JobGroupNotFound(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()

	gid := "nonexistent"
	_, err := svc.Create(context.Background(), "admin", &dto.CreateUserRequest{
		Name:       "王五",
		JobGroupID: &gid,
	})
	if !errors.Is(err, ErrJobGroupNotFound) {
		t.Errorf("期望 ErrJobGroupNotFound，实际: %v", err)
	}
	if userRepo.writes != 0 {
		t.Error("校验失败不应产生写入")
	}
}

func TestUserService_Create_NonAdminDenied(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()

	for _, role := range []string{"member", "team_lead"} {
		_, err := svc.Create(context.Background(), role, &dto.CreateUserRequest{Name: "某人"})
		if !errors.Is(err, ErrNoPermission) {
			t.Errorf("角色%s创建用户应被拒绝，实际: %v", role, err)
		}
	}
	if userRepo.writes != 0 {
		t.Error("鉴权拒绝不应产生写入")
	}
}

// ── List 测试 ──

func TestUserService_List_Success(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	userRepo.users["user-001"] = &model.User{UserID: "user-001", Name: "张三", Role: "member", Status: "active"}
	userRepo.users["user-002"] = &model.User{UserID: "user-002", Name: "李四", Role: "team_lead", Status: "active"}

	users, total, err := svc.List(context.Background(), "admin", &dto.PaginationRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 {
		t.Errorf("期望total=2，实际=%d", total)
	}
	if len(users) != 2 {
		t.Errorf("期望2个用户，实际=%d", len(users))
	}
}

func TestUserService_List_MemberDenied(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, _, err := svc.List(context.Background(), "member", &dto.PaginationRequest{})
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("期望 ErrNoPermission，实际: %v", err)
	}
}
