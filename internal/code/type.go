package code

// SendVerificationRequest 发送验证码请求
type SendVerificationRequest struct {
	PhoneNumber string `json:"phoneNumber" example:"09123456789"` // 手机号（11 位，09 开头）
}

// VerifyPhoneRequest 验证手机号请求
type VerifyPhoneRequest struct {
	PhoneNumber string `json:"phoneNumber" example:"09123456789"`
	Code        string `json:"code" example:"123456"` // 短信验证码（6 位）
}
