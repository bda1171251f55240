package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// ProviderHandlers handles the provider/category browse and admin surface
type ProviderHandlers struct {
	providerRepo domain.ProviderRepository
	categoryRepo domain.CategoryRepository
}

// NewProviderHandlers creates new provider handlers
func NewProviderHandlers(providerRepo domain.ProviderRepository, categoryRepo domain.CategoryRepository) *ProviderHandlers {
	return &ProviderHandlers{
		providerRepo: providerRepo,
		categoryRepo: categoryRepo,
	}
}

// CategoryRequest represents category create/update payload
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProviderRequest represents provider create/update payload
type ProviderRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
	LogoURL    string `json:"logo_url"`
	Active     *bool  `json:"active"`
}

func providerJSON(p *domain.Provider) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"category_id": p.CategoryID,
		"logo_url":    p.LogoURL,
		"active":      p.Active,
	}
}

// ListCategories lists all categories
func (h *ProviderHandlers) ListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	out := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		out = append(out, gin.H{"id": cat.ID, "name": cat.Name})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// ListProviders lists providers, optionally filtered by category
func (h *ProviderHandlers) ListProviders(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		categoryID = uint(id)
	}

	providers, err := h.providerRepo.List(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}

	out := make([]gin.H, 0, len(providers))
	for i := range providers {
		out = append(out, providerJSON(&providers[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// GetProvider returns a single provider
func (h *ProviderHandlers) GetProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	provider, err := h.providerRepo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get provider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": providerJSON(provider)})
}

// CreateCategory creates a category (admin)
func (h *ProviderHandlers) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &domain.Category{Name: req.Name}
	if err := h.categoryRepo.Create(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": category.ID, "name": category.Name}})
}

// UpdateCategory updates a category (admin)
func (h *ProviderHandlers) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &domain.Category{ID: uint(id), Name: req.Name}
	if err := h.categoryRepo.Update(c.Request.Context(), category); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": category.ID, "name": category.Name}})
}

// CreateProvider creates a provider (admin)
func (h *ProviderHandlers) CreateProvider(c *gin.Context) {
	var req ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.categoryRepo.FindByID(c.Request.Context(), req.CategoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	provider := &domain.Provider{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		LogoURL:    req.LogoURL,
		Active:     active,
	}
	if err := h.providerRepo.Create(c.Request.Context(), provider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": providerJSON(provider)})
}

// UpdateProvider updates a provider (admin)
func (h *ProviderHandlers) UpdateProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	var req ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	provider := &domain.Provider{
		ID:         uint(id),
		Name:       req.Name,
		CategoryID: req.CategoryID,
		LogoURL:    req.LogoURL,
		Active:     active,
	}
	if err := h.providerRepo.Update(c.Request.Context(), provider); err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": providerJSON(provider)})
}
