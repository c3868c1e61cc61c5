package dto

// UpdateUserRequest 管理员修改用户
type UpdateUserRequest struct {
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin editor reader"`
	IsActive *bool  `json:"is_active,omitempty"`
}
