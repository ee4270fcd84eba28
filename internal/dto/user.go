package dto

import (
	"time"

	"madrese/auth-service/internal/menu"
	"madrese/auth-service/internal/model/user"
)

// User is the account as the portal sees it.
type User struct {
	ID          int       `json:"id" example:"1"`
	NationalID  string    `json:"nationalId" example:"1234567890"`
	PhoneNumber string    `json:"phoneNumber" example:"09123456789"`
	Email       *string   `json:"email,omitempty" example:"sara@example.com"`
	FirstName   string    `json:"firstName" example:"سارا"`
	LastName    string    `json:"lastName" example:"احمدی"`
	Role        string    `json:"role" example:"teacher"`
	SchoolID    string    `json:"schoolId" example:"school-1"`
	TrialActive bool      `json:"trialActive" example:"true"`
	TrialEndsAt time.Time `json:"trialEndsAt"`
	Dashboard   string    `json:"dashboard" example:"/dashboard/teacher"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewUser(u *user.User, now time.Time) User {
	return User{
		ID:          u.ID,
		NationalID:  u.NationalID,
		PhoneNumber: u.Phone,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		SchoolID:    u.SchoolID,
		TrialActive: u.TrialActive(now),
		TrialEndsAt: u.TrialEndsAt,
		Dashboard:   menu.DashboardRoute(string(u.Role)),
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse is returned by every call that establishes a session.
type AuthResponse struct {
	User        User   `json:"user"`
	RedirectURL string `json:"redirectUrl" example:"/dashboard/teacher"`
	AccessToken string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// SuccessFlag 简单成功响应
type SuccessFlag struct {
	Success bool `json:"success" example:"true"`
}

// MenuResponse 角色菜单
type MenuResponse struct {
	Role      string       `json:"role" example:"teacher"`
	Dashboard string       `json:"dashboard" example:"/dashboard/teacher"`
	Entries   []menu.Entry `json:"entries"`
}

func NewMenu(role string) MenuResponse {
	return MenuResponse{
		Role:      role,
		Dashboard: menu.DashboardRoute(role),
		Entries:   menu.ForString(role),
	}
}
