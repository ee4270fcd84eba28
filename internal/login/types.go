package login

// LoginRequest 登录请求
type LoginRequest struct {
	NationalID string `json:"nationalId" example:"1234567890"` // 国家身份证号（10 位）
	Password   string `json:"password" example:"7890"`         // 身份证号后四位
}
