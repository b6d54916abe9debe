package model

// User 用户表 — 对应 users
type User struct {
	UserID     string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name       string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Phone      string   `gorm:"type:varchar(32);not null;default:''"           json:"phone"`
	Email      string   `gorm:"type:varchar(255);not null;default:''"          json:"email"`
	Role       string   `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	JobGroupID *string  `gorm:"type:uuid"                                      json:"job_group_id,omitempty"`
	DailyRate  *float64 `gorm:"type:numeric(12,2)"                             json:"daily_rate,omitempty"` // 覆盖工种组日薪
	Status     string   `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	TeamLeadID *string  `gorm:"type:uuid"                                      json:"team_lead_id,omitempty"`
	BaseModel

	// 关联
	JobGroup *JobGroup `gorm:"foreignKey:JobGroupID;references:JobGroupID" json:"job_group,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
