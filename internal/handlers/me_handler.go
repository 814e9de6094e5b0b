package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AtelierAutoPro/garage-manager/internal/middleware"
	"github.com/AtelierAutoPro/garage-manager/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":        user.ID,
			"nom":       user.Nom,
			"email":     user.Email,
			"telephone": user.Telephone,
			"role":      user.Role,
		},
	}

	if user.Role == models.RoleGarage {
		var profile models.GarageProfile
		if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			resp["garage"] = profile
		}
	}

	c.JSON(http.StatusOK, resp)
}
