package auth

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

const userKey = "auth_user"

const bearerPrefix = "Bearer "

// SessionGuard validates bearer tokens and loads the referenced user onto
// the request.
type SessionGuard struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewSessionGuard constructs the middleware.
func NewSessionGuard(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *SessionGuard {
	return &SessionGuard{tokens: tokens, users: users, logger: logger}
}

// Handle enforces authentication for protected routes. Missing, malformed,
// forged and expired credentials all collapse to a single unauthorized
// outcome.
func (g *SessionGuard) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return apperrors.NewUnauthorized("Access denied. No token provided.")
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("Unauthorized access")
	}

	user, err := g.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewUnauthorized("Unauthorized access")
		}
		return err
	}

	// The stored session slot is compared against the presented token, but a
	// mismatch is only logged, never rejected. Upstream behavior kept as-is;
	// hardening this is a product decision.
	if user.AccessToken == nil || *user.AccessToken != token {
		g.logger.Warn("presented token does not match stored session token",
			zap.String("user_id", user.ID.String()))
	}

	c.Locals(userKey, user)
	return c.Next()
}

// UserFromContext retrieves the authenticated user attached by the guard.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
