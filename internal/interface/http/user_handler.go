package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/application"
	"github.com/lumoshop/lumoshop-api/internal/interface/middleware"
	"github.com/lumoshop/lumoshop-api/pkg/response"
	"github.com/lumoshop/lumoshop-api/pkg/validation"
)

type UserHandler struct {
	Svc        *application.UserService
	Federation *application.FederationService
	Reset      *application.ResetService
	Logger     *logrus.Logger
	VerifyURL  string
}

func NewUserHandler(svc *application.UserService, fed *application.FederationService, reset *application.ResetService, logger *logrus.Logger, verifyURL string) *UserHandler {
	return &UserHandler{Svc: svc, Federation: fed, Reset: reset, Logger: logger, VerifyURL: verifyURL}
}

type signupRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleAuthRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type updateProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

// Signup POST /api/v1/users/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userView(u)}, "user created", nil)
}

// Login POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "user": userView(u)},
		"login successful", gin.H{"expires_at": exp})
}

// GoogleAuthenticate POST /api/v1/users/google-authenticate
func (h *UserHandler) GoogleAuthenticate(c *gin.Context) {
	var req googleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Federation.Authenticate(c.Request.Context(), req.IDToken)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	token, exp, err := h.Svc.IssueSession(u)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "user": userView(u)},
		"login successful", gin.H{"expires_at": exp})
}

// GetProfile GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "profile", nil)
}

// UpdateProfile PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Svc.UpdateProfile(c.Request.Context(), u, application.UpdateProfileInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userView(updated), "profile updated", nil)
}

// UpdatePassword POST /api/v1/users/update-password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	u, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), u.ID, req.OldPassword, req.NewPassword); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "password updated", nil)
}

// ConfirmEmail POST /api/v1/users/confirm-email
// Issues a confirmation token on the caller's identity and mails the link.
func (h *UserHandler) ConfirmEmail(c *gin.Context) {
	u, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.Reset.RequestEmailConfirmation(c.Request.Context(), u, h.VerifyURL); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email has been sent to "+u.Email, nil)
}

// VerifyEmail GET /api/v1/users/verify-email/:token
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if err := h.Reset.ConsumeEmailConfirmation(c.Request.Context(), token); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}

// UploadPhoto POST /api/v1/users/upload-photo
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	u, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error[any](c, http.StatusForbidden, "forbidden", nil)
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadPhoto(c.Request.Context(), u, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo_url": url}, "photo uploaded", nil)
}
