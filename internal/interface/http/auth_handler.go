package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/application"
	"github.com/lumoshop/lumoshop-api/pkg/response"
	"github.com/lumoshop/lumoshop-api/pkg/validation"
)

// AuthHandler owns the public password-reset endpoints.
type AuthHandler struct {
	Reset    *application.ResetService
	Logger   *logrus.Logger
	ResetURL string
}

func NewAuthHandler(reset *application.ResetService, logger *logrus.Logger, resetURL string) *AuthHandler {
	return &AuthHandler{Reset: reset, Logger: logger, ResetURL: resetURL}
}

type passwordRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type passwordResetBody struct {
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// RequestReset POST /api/v1/auth/password-request
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req passwordRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Reset.RequestPasswordReset(c.Request.Context(), req.Email, h.ResetURL); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "a reset email has been sent", nil)
}

// ValidateReset GET /api/v1/auth/password-reset/:token
// Checks the token without consuming it, so the front end can show the
// reset form only for live tokens.
func (h *AuthHandler) ValidateReset(c *gin.Context) {
	if _, err := h.Reset.Validate(c.Request.Context(), c.Param("token")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"valid": true}, "token valid", nil)
}

// ResetPassword POST /api/v1/auth/password-reset/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req passwordResetBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Reset.ConsumePasswordReset(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "log in with your new password", nil)
}
