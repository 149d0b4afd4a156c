package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelfwatch/backend/internal/domain"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	repo       domain.ProductRepository
	sourceSite string
}

// NewHandler creates a new HTTP handler serving the catalog read API
func NewHandler(repo domain.ProductRepository, sourceSite string) *Handler {
	return &Handler{repo: repo, sourceSite: sourceSite}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shelfwatch-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns the catalog for this source site, optionally
// filtered by ?category=
func (h *Handler) ListProducts(c *gin.Context) {
	category := c.Query("category")

	products, err := h.repo.List(c.Request.Context(), h.sourceSite, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	if products == nil {
		products = []domain.ProductRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"sourceSite": h.sourceSite,
		"count":      len(products),
		"products":   products,
	})
}

// GetProduct returns a single product by id
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetPriceHistory returns just the append-only price history for a product
func (h *Handler) GetPriceHistory(c *gin.Context) {
	product, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           product.ID,
		"name":         product.Name,
		"priceHistory": product.PriceHistory,
	})
}

func (h *Handler) lookup(c *gin.Context) (*domain.ProductRecord, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error()})
		return nil, false
	}

	product, err := h.repo.Get(c.Request.Context(), h.sourceSite, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		}
		return nil, false
	}
	return product, true
}
