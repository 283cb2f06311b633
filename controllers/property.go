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
	"github.com/sancruz-dev/dotnet-waterwise/utils"
)

// GetProperties lists all properties with their producer, degradation level
// and sensors, decorated with the flood-risk score when available.
func GetProperties(c *gin.Context) {
	var properties []models.Property
	err := config.DB.
		Preload("Producer").
		Preload("DegradationLevel").
		Preload("Sensors.SensorType").
		Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	response := make([]models.PropertyWithRisk, 0, len(properties))
	for _, property := range properties {
		response = append(response, withFloodRisk(property))
	}

	c.JSON(http.StatusOK, response)
}

// GetProperty returns one property with its flood-risk score.
func GetProperty(c *gin.Context) {
	var property models.Property
	err := config.DB.
		Preload("Producer").
		Preload("DegradationLevel").
		Preload("Sensors.SensorType").
		First(&property, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Property with ID %s not found", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, withFloodRisk(property))
}

// CreateProperty registers a new rural property.
func CreateProperty(c *gin.Context) {
	var input models.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property: " + err.Error()})
		return
	}

	property := models.Property{
		ProducerID:         input.ProducerID,
		DegradationLevelID: input.DegradationLevelID,
		Name:               input.Name,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		AreaHectares:       input.AreaHectares,
	}
	if err := config.DB.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	config.DB.Preload("Producer").Preload("DegradationLevel").First(&property, property.ID)

	zap.L().Info("property created", zap.Uint("propertyId", property.ID))
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty edits an existing property.
func UpdateProperty(c *gin.Context) {
	var property models.Property
	if err := config.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Property with ID %s not found", c.Param("id"))})
		return
	}

	var input models.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property: " + err.Error()})
		return
	}

	property.DegradationLevelID = input.DegradationLevelID
	property.Name = input.Name
	property.Latitude = input.Latitude
	property.Longitude = input.Longitude
	property.AreaHectares = input.AreaHectares

	if err := config.DB.Save(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	config.DB.Preload("Producer").Preload("DegradationLevel").First(&property, property.ID)
	c.JSON(http.StatusOK, property)
}

// DeleteProperty removes a property together with all of its sensors and
// their readings, in one transaction. Readings go first, then sensors, then
// the property, matching the FK dependency order. Any failure rolls the
// whole thing back.
func DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	zap.L().Info("starting property deletion", zap.String("propertyId", id))

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var property models.Property
	if err := tx.Preload("Sensors").First(&property, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("property not found", zap.String("propertyId", id))
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Property with ID %s not found", id)})
			return
		}
		deletionFailed(c, id, err)
		return
	}

	if len(property.Sensors) > 0 {
		sensorIDs := make([]uint, 0, len(property.Sensors))
		for _, sensor := range property.Sensors {
			sensorIDs = append(sensorIDs, sensor.ID)
		}

		zap.L().Info("cascading delete over sensors",
			zap.Uint("propertyId", property.ID), zap.Int("sensorCount", len(sensorIDs)))

		result := tx.Where("sensor_id IN ?", sensorIDs).Delete(&models.Reading{})
		if result.Error != nil {
			tx.Rollback()
			deletionFailed(c, id, result.Error)
			return
		}
		zap.L().Info("readings deleted", zap.Int64("readingCount", result.RowsAffected))

		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Sensor{}).Error; err != nil {
			tx.Rollback()
			deletionFailed(c, id, err)
			return
		}
	}

	if err := tx.Delete(&property).Error; err != nil {
		tx.Rollback()
		deletionFailed(c, id, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		deletionFailed(c, id, err)
		return
	}

	zap.L().Info("property, sensors and readings deleted", zap.Uint("propertyId", property.ID))
	c.Status(http.StatusNoContent)
}

func deletionFailed(c *gin.Context, id string, err error) {
	zap.L().Error("property deletion failed, transaction rolled back",
		zap.String("propertyId", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal error while deleting property",
		"details": "The operation was reverted. No data was changed.",
	})
}

// withFloodRisk attaches the external risk score to a property when its
// latest reading and the scoring API are both available. Scoring failures
// degrade to a null score.
func withFloodRisk(property models.Property) models.PropertyWithRisk {
	result := models.PropertyWithRisk{Property: property}

	var latest models.Reading
	err := config.DB.
		Joins("JOIN sensors ON sensors.id = readings.sensor_id").
		Where("sensors.property_id = ?", property.ID).
		Order("readings.timestamp desc").
		First(&latest).Error
	if err != nil {
		return result
	}

	risk, err := utils.GetFloodRisk(riskAPIURL, property, latest)
	if err != nil {
		if !errors.Is(err, utils.ErrRiskAPINotConfigured) {
			zap.L().Debug("flood risk scoring failed",
				zap.Uint("propertyId", property.ID), zap.Error(err))
		}
		return result
	}

	result.FloodRisk = &risk
	return result
}
