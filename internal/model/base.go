package model

import "time"

// ── 角色常量 ──

const (
	RoleMember   = "member"
	RoleTeamLead = "team_lead"
	RoleAdmin    = "admin"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
