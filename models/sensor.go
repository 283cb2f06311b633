package models

import "time"

// SensorType is a catalog entry describing what a sensor measures.
type SensorType struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:50;unique;not null"`
	Description string  `json:"description" gorm:"size:150"`
	Unit        string  `json:"unit" gorm:"size:10"`
	MinValue    float64 `json:"minValue"`
	MaxValue    float64 `json:"maxValue"`
}

// Sensor is an IoT device installed on a property.
type Sensor struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	PropertyID   uint        `json:"propertyId" gorm:"not null"`
	SensorTypeID uint        `json:"sensorTypeId" gorm:"not null"`
	DeviceModel  *string     `json:"deviceModel" gorm:"size:50"`
	InstalledAt  time.Time   `json:"installedAt" gorm:"autoCreateTime"`
	Status       string      `json:"status" gorm:"size:20;default:ACTIVE"`
	Property     *Property   `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	SensorType   *SensorType `json:"sensorType,omitempty" gorm:"foreignKey:SensorTypeID"`
	Readings     []Reading   `json:"readings,omitempty" gorm:"foreignKey:SensorID"`
}

type CreateSensorInput struct {
	PropertyID   uint    `json:"propertyId" binding:"required"`
	SensorTypeID uint    `json:"sensorTypeId" binding:"required"`
	DeviceModel  *string `json:"deviceModel" binding:"omitempty,max=50"`
}
