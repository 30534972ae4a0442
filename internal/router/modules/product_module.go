package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/lumoshop/lumoshop-api/internal/interface/http"
	"github.com/lumoshop/lumoshop-api/internal/interface/middleware"
)

// ProductModule wires the catalog. Reads are public (exempt from the
// access gate); writes require an admin identity.

type ProductModule struct {
	Handler *handlers.ProductHandler
}

func NewProductModule(h *handlers.ProductHandler) *ProductModule {
	return &ProductModule{Handler: h}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	products := rg.Group("/v1/products")
	{
		products.GET("", m.Handler.List)
		products.GET("/:productId", m.Handler.Get)
	}

	manage := rg.Group("/v1/admin/products")
	manage.Use(middleware.RequireAdmin())
	{
		manage.POST("", m.Handler.Create)
		manage.PUT("/:productId", m.Handler.Update)
		manage.DELETE("/:productId", m.Handler.Delete)
	}
}
