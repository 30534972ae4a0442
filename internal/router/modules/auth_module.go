package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/lumoshop/lumoshop-api/internal/interface/http"
	"github.com/lumoshop/lumoshop-api/internal/interface/middleware"
)

// AuthModule wires the password reset lifecycle. All routes are public;
// the token itself is the credential.

type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	requestLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath())

	auth := rg.Group("/v1/auth")
	{
		auth.POST("/password-request", requestLimiter, m.Handler.RequestReset)
		auth.GET("/password-reset/:token", resetLimiter, m.Handler.ValidateReset)
		auth.POST("/password-reset/:token", resetLimiter, m.Handler.ResetPassword)
	}
}
