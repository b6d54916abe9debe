package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"brian-crafts/backend/internal/model"
	pkgerrors "brian-crafts/backend/pkg/errors"
)

// AttendanceRepository 考勤记录数据访问接口
//
// 两条并发契约在此边界兑现：
//   - Create 依赖 (user_id, att_date) 唯一索引，重复签到返回 gorm.ErrDuplicatedKey，
//     并发下绝不产生第二条记录；
//   - Approve 为条件更新（approved_by IS NULL），并发审批仅一方成功，
//     另一方收到 pkgerrors.ErrConditionFailed。
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
	GetByID(ctx context.Context, id string) (*model.AttendanceRecord, error)
	Approve(ctx context.Context, id, approverID string, approvedAt time.Time, remarks *string, incidentFlag bool) error
	ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]model.AttendanceRecord, error)
	List(ctx context.Context, start, end *time.Time) ([]model.AttendanceRecord, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Approve 审批的 compare-and-set 更新：仅当 approved_by 仍为空时生效。
// 未命中任何行（记录不存在或已审批）返回 ErrConditionFailed，由调用方细化。
func (r *attendanceRepo) Approve(ctx context.Context, id, approverID string, approvedAt time.Time, remarks *string, incidentFlag bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("attendance_id = ? AND approved_by IS NULL", id).
		Updates(map[string]interface{}{
			"approved_by":   approverID,
			"approved_at":   approvedAt,
			"remarks":       remarks,
			"incident_flag": incidentFlag,
			"updated_at":    approvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrConditionFailed
	}
	return nil
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("att_date = ?", date.Format("2006-01-02")).
		Order("signed_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]model.AttendanceRecord, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	db = applyDateRange(db, start, end)

	var records []model.AttendanceRecord
	if err := db.Order("att_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) List(ctx context.Context, start, end *time.Time) ([]model.AttendanceRecord, error) {
	db := applyDateRange(r.db.WithContext(ctx), start, end)

	var records []model.AttendanceRecord
	if err := db.Order("att_date ASC, signed_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// applyDateRange 附加闭区间日期过滤
func applyDateRange(db *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		db = db.Where("att_date >= ?", start.Format("2006-01-02"))
	}
	if end != nil {
		db = db.Where("att_date <= ?", end.Format("2006-01-02"))
	}
	return db
}
