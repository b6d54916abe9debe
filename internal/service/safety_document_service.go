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

// SafetyDocumentService 安全文档业务接口
type SafetyDocumentService interface {
	// Create 发布安全文档（组长/管理员）
	Create(ctx context.Context, callerRole string, req *dto.CreateSafetyDocumentRequest) (*dto.SafetyDocumentResponse, error)
	// GetToday 当日最新安全文档；没有时返回 (nil, nil)
	GetToday(ctx context.Context) (*dto.SafetyDocumentResponse, error)
}

type safetyDocumentService struct {
	repo   *repository.Repository
	policy *policy.Policy
	logger *zap.Logger
	now    func() time.Time
}

// NewSafetyDocumentService 创建 SafetyDocumentService 实例
func NewSafetyDocumentService(repo *repository.Repository, pol *policy.Policy, logger *zap.Logger) SafetyDocumentService {
	return &safetyDocumentService{repo: repo, policy: pol, logger: logger, now: time.Now}
}

func (s *safetyDocumentService) Create(ctx context.Context, callerRole string, req *dto.CreateSafetyDocumentRequest) (*dto.SafetyDocumentResponse, error) {
	if !s.policy.Can(callerRole, policy.OpCreateSafetyDoc) {
		return nil, ErrNoPermission
	}

	docDate, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		// binding 已校验格式，此处兜底
		return nil, err
	}

	doc := &model.SafetyDocument{
		DocDate: docDate,
		Content: req.Content,
		FileURL: req.FileURL,
	}
	if err := s.repo.SafetyDocument.Create(ctx, doc); err != nil {
		s.logger.Error("发布安全文档失败", zap.Error(err))
		return nil, err
	}

	resp := toSafetyDocumentResponse(doc)
	return &resp, nil
}

func (s *safetyDocumentService) GetToday(ctx context.Context) (*dto.SafetyDocumentResponse, error) {
	// 同日多份时以创建时间最新的为准
	doc, err := s.repo.SafetyDocument.GetLatestByDate(ctx, dateOnly(s.now().UTC()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询当日安全文档失败", zap.Error(err))
		return nil, err
	}

	resp := toSafetyDocumentResponse(doc)
	return &resp, nil
}

func toSafetyDocumentResponse(d *model.SafetyDocument) dto.SafetyDocumentResponse {
	return dto.SafetyDocumentResponse{
		SafetyDocumentID: d.SafetyDocumentID,
		Date:             d.DocDate.Format("2006-01-02"),
		Content:          d.Content,
		FileURL:          d.FileURL,
		CreatedAt:        d.CreatedAt,
	}
}
