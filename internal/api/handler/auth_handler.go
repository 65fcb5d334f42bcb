package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/postboard/internal/api/middleware"
	"github.com/99minutos/postboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func invalidPayload(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
}

// Register creates a new account and signs the caller in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      200   {object}  ports.UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.authService.Register(c.Request().Context(), ctxSession(c), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	if err := middleware.SaveSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Login signs the caller in by username or email.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.authService.Login(c.Request().Context(), ctxSession(c), req.UsernameOrEmail, req.Password)
	if err != nil {
		return err
	}
	if err := middleware.SaveSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout destroys the caller's session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {boolean}  boolean
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ok := h.authService.Logout(c.Request().Context(), ctxSession(c))
	return c.JSON(http.StatusOK, ok)
}

// Me returns the signed-in user, or null when the account is gone.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.Me(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ForgotPassword mails a password reset link.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {boolean} boolean
// @Failure      400   {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	ok, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok)
}

// ChangePassword redeems a reset token and signs the caller in as its owner.
//
// @Summary      Change password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Token and new password"
// @Success      200   {object}  ports.UserResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.authService.ChangePassword(c.Request().Context(), ctxSession(c), req.Token, req.NewPassword)
	if err != nil {
		return err
	}
	if err := middleware.SaveSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
