package transport

import "github.com/Skotchmaster/academic_records/internal/service"

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleName string `json:"role_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser keeps the login payload's "role" key.
type LoginUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    service.UserView `json:"user"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// ProfileResponse carries the stored identity; TokenRole is what the
// presented token claims and may lag behind until the next login.
type ProfileResponse struct {
	Success   bool             `json:"success"`
	User      service.UserView `json:"user"`
	TokenRole string           `json:"token_role"`
}

type ErrorResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Errors  []service.FieldError `json:"errors,omitempty"`
}

type RoleListResponse struct {
	Success bool     `json:"success"`
	Roles   []string `json:"roles"`
}

type OverviewResponse struct {
	Success  bool   `json:"success"`
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}
