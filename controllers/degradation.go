package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/config"
	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// GetDegradationLevels lists the soil degradation catalog.
func GetDegradationLevels(c *gin.Context) {
	var levels []models.DegradationLevel
	if err := config.DB.Order("numeric_level").Find(&levels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch degradation levels"})
		return
	}
	c.JSON(http.StatusOK, levels)
}

// GetDegradationLevel returns one degradation level.
func GetDegradationLevel(c *gin.Context) {
	var level models.DegradationLevel
	if err := config.DB.First(&level, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Degradation level with ID %s not found", c.Param("id"))})
		return
	}
	c.JSON(http.StatusOK, level)
}

// CreateDegradationLevel adds a new catalog entry.
func CreateDegradationLevel(c *gin.Context) {
	var input models.CreateDegradationLevelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid degradation level: " + err.Error()})
		return
	}

	level := models.DegradationLevel{
		Code:              input.Code,
		Description:       input.Description,
		NumericLevel:      input.NumericLevel,
		CorrectiveActions: input.CorrectiveActions,
	}
	if err := config.DB.Create(&level).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Degradation level already exists"})
		return
	}

	c.JSON(http.StatusCreated, level)
}

// DeleteDegradationLevel removes a degradation level, refusing while
// properties still reference it.
func DeleteDegradationLevel(c *gin.Context) {
	id := c.Param("id")

	var level models.DegradationLevel
	if err := config.DB.First(&level, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Degradation level with ID %s not found", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch degradation level"})
		return
	}

	var propertyCount int64
	if err := config.DB.Model(&models.Property{}).
		Where("degradation_level_id = ?", level.ID).
		Count(&propertyCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count properties"})
		return
	}

	if propertyCount > 0 {
		zap.L().Warn("degradation level deletion blocked by referencing properties",
			zap.Uint("levelId", level.ID), zap.Int64("propertyCount", propertyCount))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Degradation level with ID %s has %d associated properties. Delete the properties first.", id, propertyCount),
		})
		return
	}

	if err := config.DB.Delete(&level).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete degradation level"})
		return
	}

	c.Status(http.StatusNoContent)
}
