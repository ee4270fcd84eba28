package register

import "madrese/auth-service/internal/model/user"

// CompleteProfileRequest 完善资料请求，手机号来自已验证的 registration ticket
type CompleteProfileRequest struct {
	NationalID string `json:"nationalId" example:"1234567890"`
	FirstName  string `json:"firstName" example:"سارا"`
	LastName   string `json:"lastName" example:"احمدی"`
	Email      string `json:"email,omitempty" example:"sara@example.com"`
	Role       string `json:"role" example:"teacher"`
	SchoolID   string `json:"schoolId" example:"school-1"`
}

func (r CompleteProfileRequest) Profile(phone string) user.Profile {
	return user.Profile{
		NationalID: r.NationalID,
		Phone:      phone,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Role:       r.Role,
		SchoolID:   r.SchoolID,
	}
}
