package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// UsersHandler exposes signup and login.
type UsersHandler struct {
	auth    *service.AuthService
	metrics *observability.Metrics
}

// NewUsersHandler constructs handler. metrics may be nil.
func NewUsersHandler(authService *service.AuthService, metrics *observability.Metrics) *UsersHandler {
	return &UsersHandler{auth: authService, metrics: metrics}
}

// Signup handles POST /signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := h.auth.Signup(c.UserContext(), req.ToInput())
	h.metrics.RecordAuthAttempt("signup", err)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAuthResponse(res))
}

// Login handles POST /login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := h.auth.Login(c.UserContext(), req.ToInput())
	h.metrics.RecordAuthAttempt("login", err)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAuthResponse(res))
}

func invalidBody() error {
	return apperrors.NewValidationError("invalid request body", nil)
}
