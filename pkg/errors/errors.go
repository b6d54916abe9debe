package errors

import "errors"

// ErrConditionFailed 条件更新未命中任何行：记录不存在或前置条件已不成立。
// 审批的 compare-and-set 更新（approved_by IS NULL）失效时由 Repository 层返回，
// 由 Service 层重新查询后细化为"不存在"或"已审批"。
var ErrConditionFailed = errors.New("条件更新失败：记录不存在或已被其他操作修改")
