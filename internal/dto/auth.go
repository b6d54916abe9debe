package dto

// ── 认证模块 DTO ──

// OTPRequest 申请验证码请求（邮箱或手机号二选一）
type OTPRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty"`
}

// LoginRequest OTP 登录请求
type LoginRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"omitempty"`
	OTP   string `json:"otp"   binding:"required,len=6"`
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse 登录成功返回的令牌对
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // 恒为 "bearer"
}
