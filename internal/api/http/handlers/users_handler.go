package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/validation"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// UsersHandler exposes the account lifecycle endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Signup handles POST /user/auth/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("Validation failed", validation.Details(err))
	}

	user, err := h.accounts.Signup(c.Context(), service.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Gender:      domain.Gender(req.Gender),
		Country:     req.Country,
		City:        req.City,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Account created successfully", user)
}

// Login handles POST /user/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewBadRequest("Email and password are required.")
	}

	token, _, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", dto.LoginResponse{Token: token})
}

// Logout handles POST /user/auth/logout/:userId.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if err := h.accounts.Logout(c.Context(), c.Params("userId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logout successful", nil)
}

// UpdateUser handles POST /user/auth/updateUser.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	user, err := h.accounts.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Password:    req.Password,
		Gender:      domain.Gender(req.Gender),
		Country:     req.Country,
		City:        req.City,
		CompanyName: req.CompanyName,
		Email:       req.Email,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Profile updated successfully", dto.UpdatedProfileResponse{
		UserID:      user.ID.String(),
		Name:        user.Name,
		Password:    user.PasswordHash,
		Gender:      string(user.Gender),
		Country:     user.Country,
		City:        user.City,
		CompanyName: user.CompanyName,
	})
}
