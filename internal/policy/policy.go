package policy

import "brian-crafts/backend/internal/model"

// Operation 受权限控制的业务操作
type Operation string

const (
	OpSignSelf        Operation = "attendance:sign_self"
	OpSignOnBehalf    Operation = "attendance:sign_on_behalf"
	OpApprove         Operation = "attendance:approve"
	OpListToday       Operation = "attendance:list_today"
	OpViewOwnReport   Operation = "report:view_own"
	OpViewAnyReport   Operation = "report:view_any"
	OpExportReports   Operation = "report:export"
	OpCreateUser      Operation = "user:create"
	OpListUsers       Operation = "user:list"
	OpCreateJobGroup  Operation = "job_group:create"
	OpListJobGroups   Operation = "job_group:list"
	OpCreateSafetyDoc Operation = "safety_doc:create"
)

// Policy 角色 × 操作的授权表，未登记的组合一律拒绝。
//
// 组长代签默认关闭（取两个历史版本中更严格的策略），
// 可通过 feature.team_lead_sign_on_behalf 开启。
type Policy struct {
	allowed map[string]map[Operation]bool
}

// New 按功能开关构建授权表
func New(teamLeadSignOnBehalf bool) *Policy {
	p := &Policy{allowed: map[string]map[Operation]bool{
		model.RoleMember: {
			OpSignSelf:      true,
			OpViewOwnReport: true,
		},
		model.RoleTeamLead: {
			OpSignSelf:        true,
			OpApprove:         true,
			OpListToday:       true,
			OpViewOwnReport:   true,
			OpViewAnyReport:   true,
			OpExportReports:   true,
			OpListUsers:       true,
			OpListJobGroups:   true,
			OpCreateSafetyDoc: true,
		},
		model.RoleAdmin: {
			OpSignSelf:        true,
			OpSignOnBehalf:    true,
			OpApprove:         true,
			OpListToday:       true,
			OpViewOwnReport:   true,
			OpViewAnyReport:   true,
			OpExportReports:   true,
			OpCreateUser:      true,
			OpListUsers:       true,
			OpCreateJobGroup:  true,
			OpListJobGroups:   true,
			OpCreateSafetyDoc: true,
		},
	}}

	if teamLeadSignOnBehalf {
		p.allowed[model.RoleTeamLead][OpSignOnBehalf] = true
	}

	return p
}

// Can 判定角色是否允许执行操作；未知角色或未登记的操作一律拒绝
func (p *Policy) Can(role string, op Operation) bool {
	ops, ok := p.allowed[role]
	if !ok {
		return false
	}
	return ops[op]
}
