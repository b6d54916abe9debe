package repository

import (
	"context"

	"gorm.io/gorm"

	"brian-crafts/backend/internal/model"
)

// JobGroupRepository 工种组数据访问接口
type JobGroupRepository interface {
	Create(ctx context.Context, group *model.JobGroup) error
	GetByID(ctx context.Context, id string) (*model.JobGroup, error)
	List(ctx context.Context) ([]model.JobGroup, error)
}

// jobGroupRepo JobGroupRepository 的 GORM 实现
type jobGroupRepo struct {
	db *gorm.DB
}

// NewJobGroupRepo 创建 JobGroupRepository 实例
func NewJobGroupRepo(db *gorm.DB) JobGroupRepository {
	return &jobGroupRepo{db: db}
}

func (r *jobGroupRepo) Create(ctx context.Context, group *model.JobGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *jobGroupRepo) GetByID(ctx context.Context, id string) (*model.JobGroup, error) {
	var group model.JobGroup
	err := r.db.WithContext(ctx).
		Where("job_group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *jobGroupRepo) List(ctx context.Context) ([]model.JobGroup, error) {
	var groups []model.JobGroup
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
