package dto

import "time"

// ── 安全文档模块 DTO ──

// CreateSafetyDocumentRequest 发布安全文档请求
type CreateSafetyDocumentRequest struct {
	Date    string  `json:"date"     binding:"required,datetime=2006-01-02"`
	Content string  `json:"content"  binding:"required"`
	FileURL *string `json:"file_url" binding:"omitempty,url"`
}

// SafetyDocumentResponse 安全文档响应
type SafetyDocumentResponse struct {
	SafetyDocumentID string    `json:"safety_document_id"`
	Date             string    `json:"date"` // YYYY-MM-DD
	Content          string    `json:"content"`
	FileURL          *string   `json:"file_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
