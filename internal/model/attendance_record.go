package model

import "time"

// AttendanceRecord 考勤记录表 — 对应 attendance_records
//
// 状态机：不存在（未签到）→ Signed（approved_by 为空）→ Approved（终态）。
// (user_id, att_date) 上有唯一索引，每人每天至多一条；审批后不再变更。
type AttendanceRecord struct {
	AttendanceID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"         json:"attendance_id"`
	UserID       string     `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	AttDate      time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	Signed       bool       `gorm:"not null;default:true"                                  json:"signed"`
	SignatureURL *string    `gorm:"type:text"                                              json:"signature_url,omitempty"`
	SignedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                     json:"signed_at"`
	DeviceInfo   *string    `gorm:"type:text"                                              json:"device_info,omitempty"`
	Location     *string    `gorm:"type:text"                                              json:"location,omitempty"`
	ApprovedBy   *string    `gorm:"type:uuid"                                              json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	Remarks      *string    `gorm:"type:text"                                              json:"remarks,omitempty"`
	IncidentFlag bool       `gorm:"not null;default:false"                                 json:"incident_flag"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// IsApproved 是否已进入终态
func (r *AttendanceRecord) IsApproved() bool { return r.ApprovedBy != nil }
