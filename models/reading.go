package models

import "time"

// Reading is one timestamped measurement batch from a sensor. The composite
// unique index is the last-resort arbiter against two readings for the same
// sensor landing on an identical timestamp.
type Reading struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	SensorID        uint      `json:"sensorId" gorm:"not null;uniqueIndex:idx_sensor_timestamp"`
	Timestamp       time.Time `json:"timestamp" gorm:"not null;uniqueIndex:idx_sensor_timestamp"`
	SoilMoisture    *float64  `json:"soilMoisture"`
	AirTemperature  *float64  `json:"airTemperature"`
	PrecipitationMm *float64  `json:"precipitationMm"`
}

// SensorDataInput is the device-facing ingestion payload.
type SensorDataInput struct {
	SensorID        uint     `json:"sensorId" binding:"required"`
	SoilMoisture    *float64 `json:"soilMoisture" binding:"omitempty,gte=0,lte=100"`
	AirTemperature  *float64 `json:"airTemperature" binding:"omitempty,gte=-50,lte=60"`
	PrecipitationMm *float64 `json:"precipitationMm" binding:"omitempty,gte=0,lte=500"`
}
