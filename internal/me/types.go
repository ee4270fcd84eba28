package me

import "madrese/auth-service/internal/dto"

// UserInfoResponse 用户信息响应
type UserInfoResponse struct {
	User dto.User `json:"user"`
}
