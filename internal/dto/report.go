package dto

// ── 报表模块 DTO ──

// IndividualReportResponse 个人考勤报表
//
// TotalAbsent 为"有记录的天数 − 出勤天数"的粗略近似（未对照应出勤日历），下限为 0。
type IndividualReportResponse struct {
	UserID       string  `json:"user_id"`
	TotalPresent int64   `json:"total_present"`
	TotalAbsent  int64   `json:"total_absent"`
	TotalPay     float64 `json:"total_pay"`
}

// TeamReportResponse 团队考勤报表
// ByGroup 键为工种组名称；无法解析工种组的成员不计入分组，但计入总数
type TeamReportResponse struct {
	TotalPresent int64            `json:"total_present"`
	ByGroup      map[string]int64 `json:"by_group"`
}
