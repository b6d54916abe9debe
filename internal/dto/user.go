package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（管理员）
type CreateUserRequest struct {
	Name       string   `json:"name"         binding:"required,min=2,max=100"`
	Phone      string   `json:"phone"        binding:"omitempty,max=32"`
	Email      string   `json:"email"        binding:"omitempty,email"`
	Role       string   `json:"role"         binding:"omitempty,oneof=member team_lead admin"`
	JobGroupID *string  `json:"job_group_id" binding:"omitempty,uuid"`
	DailyRate  *float64 `json:"daily_rate"   binding:"omitempty,gte=0"`
	TeamLeadID *string  `json:"team_lead_id" binding:"omitempty,uuid"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	UserID     string            `json:"user_id"`
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Role       string            `json:"role"`
	JobGroupID *string           `json:"job_group_id,omitempty"`
	DailyRate  *float64          `json:"daily_rate,omitempty"`
	Status     string            `json:"status"`
	TeamLeadID *string           `json:"team_lead_id,omitempty"`
	JobGroup   *JobGroupResponse `json:"job_group,omitempty"`
}
