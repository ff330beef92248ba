package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-gateway/internal/api/dto"
	"github.com/spec-kit/credential-gateway/internal/auth"
	"github.com/spec-kit/credential-gateway/internal/service"
	apperrors "github.com/spec-kit/credential-gateway/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and the protected echo route.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return err
	}

	err = h.auth.RegisterUser(c.UserContext(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserAlreadyExists):
		return apperrors.NewAlreadyExists("username already registered")
	case errors.Is(err, service.ErrUsernameRequired):
		return apperrors.NewValidationError("username and password required", nil)
	case errors.Is(err, auth.ErrPasswordTooLong):
		return apperrors.NewInvalidInput("password must be at most 72 bytes")
	default:
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "registered"})
}

// Login handles POST /login. Any well-formed body reaches the service, so
// empty fields fail exactly like wrong ones.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, err := h.auth.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewInvalidCredentials()
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.TokenResponse{AccessToken: token})
}

// Protected handles GET /protected.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgTokenMissing)
	}
	return c.JSON(dto.ProtectedResponse{Message: "access granted", User: identity.Subject})
}

func parseCredentials(c *fiber.Ctx) (*dto.CredentialsRequest, error) {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	return &req, nil
}
