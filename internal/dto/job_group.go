package dto

// ── 工种组模块 DTO ──

// CreateJobGroupRequest 创建工种组请求（管理员）
type CreateJobGroupRequest struct {
	Title     string  `json:"title"      binding:"required,min=2,max=100"`
	DailyRate float64 `json:"daily_rate" binding:"gte=0"`
	Allowance float64 `json:"allowance"  binding:"omitempty,gte=0"`
}

// JobGroupResponse 工种组响应
type JobGroupResponse struct {
	JobGroupID string  `json:"job_group_id"`
	Title      string  `json:"title"`
	DailyRate  float64 `json:"daily_rate"`
	Allowance  float64 `json:"allowance"`
}
