package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"brian-crafts/backend/internal/model"
)

// SafetyDocumentRepository 安全文档数据访问接口
type SafetyDocumentRepository interface {
	Create(ctx context.Context, doc *model.SafetyDocument) error
	// GetLatestByDate 返回指定日期创建时间最新的一份文档；不存在时返回 gorm.ErrRecordNotFound
	GetLatestByDate(ctx context.Context, date time.Time) (*model.SafetyDocument, error)
}

// safetyDocumentRepo SafetyDocumentRepository 的 GORM 实现
type safetyDocumentRepo struct {
	db *gorm.DB
}

// NewSafetyDocumentRepo 创建 SafetyDocumentRepository 实例
func NewSafetyDocumentRepo(db *gorm.DB) SafetyDocumentRepository {
	return &safetyDocumentRepo{db: db}
}

func (r *safetyDocumentRepo) Create(ctx context.Context, doc *model.SafetyDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *safetyDocumentRepo) GetLatestByDate(ctx context.Context, date time.Time) (*model.SafetyDocument, error) {
	var doc model.SafetyDocument
	err := r.db.WithContext(ctx).
		Where("doc_date = ?", date.Format("2006-01-02")).
		Order("created_at DESC").
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
