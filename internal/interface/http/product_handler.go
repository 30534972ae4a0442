package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/application"
	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/pkg/response"
	"github.com/lumoshop/lumoshop-api/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	Section     string `json:"section"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	ImageURL    string `json:"image_url"`
}

func productView(p *entity.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price_cents": p.PriceCents,
		"section":     p.Section,
		"quantity":    p.Quantity,
		"image_url":   p.ImageURL,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

// List GET /api/v1/products (public)
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, productView(p))
	}
	response.Success(c, http.StatusOK, out, "products", gin.H{"count": len(out)})
}

// Get GET /api/v1/products/:productId (public)
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "product", nil)
}

// Create POST /api/v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Section:     req.Section,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	}
	if err := h.Svc.Create(c.Request.Context(), p); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "product created", nil)
}

// Update PUT /api/v1/admin/products/:productId
func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p := &entity.Product{
		ID:          c.Param("productId"),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Section:     req.Section,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	}
	if err := h.Svc.Update(c.Request.Context(), p); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, productView(p), "product updated", nil)
}

// Delete DELETE /api/v1/admin/products/:productId
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
}
