package dto

import (
	"github.com/spec-kit/catalog-service/internal/validation"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	City        string `json:"city"`
	CompanyName string `json:"companyName"`
}

// Validate applies the declarative user rule set.
func (r SignupRequest) Validate() error {
	return validation.Apply(map[string]any{
		"name":        r.Name,
		"email":       r.Email,
		"password":    r.Password,
		"gender":      r.Gender,
		"country":     r.Country,
		"city":        r.City,
		"companyName": r.CompanyName,
	}, validation.UserRules)
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credential fields are present.
func (r LoginRequest) Validate() error {
	return validation.Apply(map[string]any{
		"email":    r.Email,
		"password": r.Password,
	}, validation.LoginRules)
}

// UpdateUserRequest payload for profile mutation. Email is decoded only so
// the service can reject attempts to change it.
type UpdateUserRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	City        string `json:"city"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
}

// UpdatedProfileResponse mirrors the fields returned after a profile update.
type UpdatedProfileResponse struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	City        string `json:"city"`
	CompanyName string `json:"companyName,omitempty"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}
