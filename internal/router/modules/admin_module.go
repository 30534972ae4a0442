package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/lumoshop/lumoshop-api/internal/interface/http"
	"github.com/lumoshop/lumoshop-api/internal/interface/middleware"
)

// AdminModule wires user administration routes. The access gate has
// already attached the identity; RequireAdmin checks the role.

type AdminModule struct {
	Handler *handlers.AdminHandler
	Redis   *redis.Client
}

func NewAdminModule(h *handlers.AdminHandler, rdb *redis.Client) *AdminModule {
	return &AdminModule{Handler: h, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/v1/admin")
	admin.Use(middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/search", m.Handler.SearchUsers)
		admin.PUT("/ban-user/:userId", m.Handler.BanUser)
		admin.DELETE("/users/:userId", m.Handler.DeleteUser)
	}
}
