package transport

import (
	"time"

	"github.com/Skotchmaster/storefront/services/auth/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// AccountView is every account column except the password hash.
type AccountView struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProfileView struct {
	AccountView
	ProfileImage *string `json:"profile_image"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    AccountView `json:"user"`
	Token   string      `json:"token"`
}

type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    AccountView `json:"user"`
}

type MeResponse struct {
	Success bool        `json:"success"`
	User    ProfileView `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewAccountView(a *models.Account) AccountView {
	return AccountView{
		ID:         a.ID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Phone:      a.Phone,
		IsActive:   a.IsActive,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}
