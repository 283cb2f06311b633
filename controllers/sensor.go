package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/config"
	"github.com/sancruz-dev/dotnet-waterwise/messaging"
	"github.com/sancruz-dev/dotnet-waterwise/models"
	"github.com/sancruz-dev/dotnet-waterwise/utils"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

// ReceiveData processes one incoming sensor reading: validate, dedup the
// timestamp, persist, then publish the reading and any derived alerts.
// Messaging failures never fail the request; a residual timestamp collision
// surfaces as a retryable 409.
func ReceiveData(c *gin.Context) {
	var input models.SensorDataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sensor data: " + err.Error()})
		return
	}

	var sensor models.Sensor
	if err := config.DB.Preload("Property.Producer").First(&sensor, input.SensorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("reading rejected, sensor not found", zap.Uint("sensorId", input.SensorID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sensor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sensor"})
		return
	}

	timestamp := utils.DedupTimestamp(config.DB, sensor.ID, timeNow())

	reading := models.Reading{
		SensorID:        sensor.ID,
		Timestamp:       timestamp,
		SoilMoisture:    input.SoilMoisture,
		AirTemperature:  input.AirTemperature,
		PrecipitationMm: input.PrecipitationMm,
	}

	if err := config.DB.Create(&reading).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			zap.L().Warn("duplicate reading rejected by unique index",
				zap.Uint("sensorId", sensor.ID), zap.Time("timestamp", timestamp))
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Duplicate reading detected. Try again in a few seconds.",
				"details": "A similar reading was already recorded for this sensor.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reading"})
		return
	}

	var propertyName, producerName string
	if sensor.Property != nil {
		propertyName = sensor.Property.Name
		if sensor.Property.Producer != nil {
			producerName = sensor.Property.Producer.FullName
		}
	}

	rabbit.PublishReading(messaging.NewReadingEvent(reading, propertyName, producerName))

	alerts := utils.EvaluateAlerts(reading, propertyName, producerName)
	for _, alert := range alerts {
		rabbit.PublishAlert(messaging.NewAlertEvent(alert), alert.RoutingKey)
		BroadcastAlert(alert)
	}
	if len(alerts) > 0 {
		zap.L().Warn("alerts generated for sensor",
			zap.Uint("sensorId", sensor.ID), zap.Int("alertCount", len(alerts)))
	}

	BroadcastReading(reading)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"readingId": reading.ID,
		"timestamp": reading.Timestamp,
		"message":   "Sensor data processed successfully",
	})
}

// CreateSensor registers a new sensor on a property.
func CreateSensor(c *gin.Context) {
	var input models.CreateSensorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sensor: " + err.Error()})
		return
	}

	var property models.Property
	if err := config.DB.First(&property, input.PropertyID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property not found"})
		return
	}

	sensor := models.Sensor{
		PropertyID:   input.PropertyID,
		SensorTypeID: input.SensorTypeID,
		DeviceModel:  input.DeviceModel,
		Status:       "ACTIVE",
	}
	if err := config.DB.Create(&sensor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sensor"})
		return
	}

	c.JSON(http.StatusCreated, sensor)
}

// GetSensors lists sensors, optionally filtered by property.
func GetSensors(c *gin.Context) {
	query := config.DB.Preload("SensorType")
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var sensors []models.Sensor
	if err := query.Find(&sensors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sensors"})
		return
	}
	c.JSON(http.StatusOK, sensors)
}

// GetReadings returns reading history, newest first, optionally filtered by
// sensor.
func GetReadings(c *gin.Context) {
	query := config.DB.Order("timestamp desc")
	if sensorID := c.Query("sensor_id"); sensorID != "" {
		query = query.Where("sensor_id = ?", sensorID)
	}

	var readings []models.Reading
	if err := query.Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch readings"})
		return
	}
	c.JSON(http.StatusOK, readings)
}

// DownloadCSV sends reading history as a CSV file.
func DownloadCSV(c *gin.Context) {
	query := config.DB.Order("timestamp desc")
	if sensorID := c.Query("sensor_id"); sensorID != "" {
		query = query.Where("sensor_id = ?", sensorID)
	}

	var readings []models.Reading
	if err := query.Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch readings"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=readings.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"sensor_id", "timestamp", "soil_moisture", "air_temperature", "precipitation_mm"})
	for _, reading := range readings {
		writer.Write([]string{
			fmt.Sprintf("%d", reading.SensorID),
			reading.Timestamp.Format("2006-01-02 15:04:05.000"),
			formatMeasurement(reading.SoilMoisture),
			formatMeasurement(reading.AirTemperature),
			formatMeasurement(reading.PrecipitationMm),
		})
	}
}

func formatMeasurement(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *value)
}
