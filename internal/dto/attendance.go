package dto

import "time"

// ── 考勤模块 DTO ──

// SignRequest 签到请求
// UserID 为空时为本人签到；填写他人 ID 时须具备代签权限
type SignRequest struct {
	UserID       string  `json:"user_id"       binding:"omitempty,uuid"`
	SignatureURL *string `json:"signature_url" binding:"omitempty"`
	DeviceInfo   *string `json:"device_info"   binding:"omitempty"`
	Location     *string `json:"location"      binding:"omitempty"`
}

// ApproveRequest 审批请求
type ApproveRequest struct {
	AttendanceID string  `json:"attendance_id" binding:"required,uuid"`
	Remarks      *string `json:"remarks"       binding:"omitempty,max=2000"`
	IncidentFlag bool    `json:"incident_flag"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	AttendanceID string     `json:"attendance_id"`
	UserID       string     `json:"user_id"`
	Date         string     `json:"date"` // YYYY-MM-DD
	Signed       bool       `json:"signed"`
	SignatureURL *string    `json:"signature_url,omitempty"`
	SignedAt     time.Time  `json:"signed_at"`
	DeviceInfo   *string    `json:"device_info,omitempty"`
	Location     *string    `json:"location,omitempty"`
	ApprovedBy   *string    `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	Remarks      *string    `json:"remarks,omitempty"`
	IncidentFlag bool       `json:"incident_flag"`
}
