package model

// JobGroup 工种组表 — 对应 job_groups
// 成员按工种组确定基础日薪；User.DailyRate 可覆盖
type JobGroup struct {
	JobGroupID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_group_id"`
	Title      string  `gorm:"type:varchar(100);not null"                     json:"title"`
	DailyRate  float64 `gorm:"type:numeric(12,2);not null;default:0"          json:"daily_rate"`
	Allowance  float64 `gorm:"type:numeric(12,2);not null;default:0"          json:"allowance"`
	BaseModel
}

// TableName 指定表名
func (JobGroup) TableName() string { return "job_groups" }
