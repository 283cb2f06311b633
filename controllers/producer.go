package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/config"
	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// GetProducers lists all producers.
func GetProducers(c *gin.Context) {
	var producers []models.Producer
	if err := config.DB.Find(&producers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch producers"})
		return
	}
	c.JSON(http.StatusOK, producers)
}

// GetProducer returns one producer with its properties.
func GetProducer(c *gin.Context) {
	var producer models.Producer
	if err := config.DB.Preload("Properties").First(&producer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Producer with ID %s not found", c.Param("id"))})
		return
	}
	c.JSON(http.StatusOK, producer)
}

// CreateProducer registers a new producer with a bcrypt-hashed password.
func CreateProducer(c *gin.Context) {
	var input models.CreateProducerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid producer: " + err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	producer := models.Producer{
		FullName: input.FullName,
		CpfCnpj:  input.CpfCnpj,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hashedPassword),
	}
	if err := config.DB.Create(&producer).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Producer already exists"})
		return
	}

	c.JSON(http.StatusCreated, producer)
}

// DeleteProducer removes a producer, refusing while properties still
// reference it.
func DeleteProducer(c *gin.Context) {
	id := c.Param("id")

	var producer models.Producer
	if err := config.DB.First(&producer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Producer with ID %s not found", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch producer"})
		return
	}

	var propertyCount int64
	if err := config.DB.Model(&models.Property{}).
		Where("producer_id = ?", producer.ID).
		Count(&propertyCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count properties"})
		return
	}

	if propertyCount > 0 {
		zap.L().Warn("producer deletion blocked by referencing properties",
			zap.Uint("producerId", producer.ID), zap.Int64("propertyCount", propertyCount))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Producer with ID %s has %d associated properties. Delete the properties first.", id, propertyCount),
		})
		return
	}

	if err := config.DB.Delete(&producer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete producer"})
		return
	}

	c.Status(http.StatusNoContent)
}
