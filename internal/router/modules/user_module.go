package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/lumoshop/lumoshop-api/internal/interface/http"
	"github.com/lumoshop/lumoshop-api/internal/interface/middleware"
)

// UserModule wires signup, login, federation and profile routes.
// Public: POST /v1/users/signup, POST /v1/users/login,
// POST /v1/users/google-authenticate, GET /v1/users/verify-email/:token
// Everything else under /v1/users requires a valid session.

type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())
	federationLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath())

	users := rg.Group("/v1/users")
	{
		users.POST("/signup", signupLimiter, m.Handler.Signup)
		users.POST("/login", loginLimiter, m.Handler.Login)
		users.POST("/google-authenticate", federationLimiter, m.Handler.GoogleAuthenticate)
		users.GET("/verify-email/:token", m.Handler.VerifyEmail)

		users.POST("/confirm-email", m.Handler.ConfirmEmail)
		users.GET("/me", m.Handler.GetProfile)
		users.PUT("/me", m.Handler.UpdateProfile)
		users.POST("/update-password", m.Handler.UpdatePassword)
		users.POST("/upload-photo", m.Handler.UploadPhoto)
	}
}
