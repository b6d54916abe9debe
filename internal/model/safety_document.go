package model

import "time"

// SafetyDocument 安全文档表 — 对应 safety_documents
// 每天发布一份安全须知；同日多份时以创建时间最新的为准
type SafetyDocument struct {
	SafetyDocumentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"safety_document_id"`
	DocDate          time.Time `gorm:"type:date;not null;index"                       json:"date"`
	Content          string    `gorm:"type:text;not null"                             json:"content"`
	FileURL          *string   `gorm:"type:text"                                      json:"file_url,omitempty"`
	BaseModel
}

// TableName 指定表名
func (SafetyDocument) TableName() string { return "safety_documents" }
