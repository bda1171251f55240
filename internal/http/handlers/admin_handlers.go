package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// AdminHandlers handles admin user-management HTTP requests
type AdminHandlers struct {
	userRepo domain.UserRepository
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(userRepo domain.UserRepository) *AdminHandlers {
	return &AdminHandlers{userRepo: userRepo}
}

// UpdateRoleRequest represents a role change payload
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsers lists all users (admin)
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":             u.ID,
			"email":          u.Email,
			"username":       u.Username,
			"phone":          u.Phone,
			"role":           u.Role,
			"email_verified": u.EmailVerified,
			"created_at":     u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// UpdateUserRole changes a user's role (admin)
func (h *AdminHandlers) UpdateUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !domain.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role value"})
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), uint(id), req.Role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	log.Printf("ROLE_CHANGED: user_id=%d role=%s", id, req.Role)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Role updated successfully"},
	})
}
