package http

import (
	"errors"
	"net/http"
	"strconv"

	"classcast/internal/entity"
	"classcast/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

// ListUsers godoc
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := entity.UserRole(c.GetString("user_role"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.adminUseCase.ListUsers(role, limit, offset)
	if err != nil {
		if errors.Is(err, entity.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// DeleteUser godoc
// @Summary      Delete a user account
// @Description  Superuser accounts can never be deleted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	role := entity.UserRole(c.GetString("user_role"))
	userID := c.Param("id")

	if err := h.adminUseCase.DeleteUser(role, userID); err != nil {
		switch {
		case errors.Is(err, entity.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		case errors.Is(err, entity.ErrProtectedUser):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// Stats godoc
// @Summary      Platform counters
// @Description  Total user accounts and catalog entries, for the admin dashboard.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usecase.AdminStats
// @Failure      403  {object}  map[string]string
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	role := entity.UserRole(c.GetString("user_role"))

	stats, err := h.adminUseCase.Stats(role)
	if err != nil {
		if errors.Is(err, entity.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student teacher"`
}

// ChangeUserRole godoc
// @Summary      Promote or demote a user
// @Description  Switches a user between the student and teacher roles. The bootstrap superuser cannot be demoted.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body ChangeRoleRequest true "New role"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) ChangeUserRole(c *gin.Context) {
	role := entity.UserRole(c.GetString("user_role"))
	userID := c.Param("id")

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminUseCase.ChangeUserRole(role, userID, entity.UserRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		case errors.Is(err, entity.ErrProtectedUser):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
