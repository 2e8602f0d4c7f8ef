package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// Health handles GET /health
func Health(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    env,
		})
	}
}

// GetCategories handles GET /api/v1/categories
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories())
}
