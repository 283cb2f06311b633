package models

import "time"

// Property is a rural property monitored by IoT sensors.
type Property struct {
	ID                 uint              `json:"id" gorm:"primaryKey"`
	ProducerID         uint              `json:"producerId" gorm:"not null"`
	DegradationLevelID uint              `json:"degradationLevelId" gorm:"not null"`
	Name               string            `json:"name" gorm:"size:100;not null"`
	Latitude           float64           `json:"latitude" gorm:"not null"`
	Longitude          float64           `json:"longitude" gorm:"not null"`
	AreaHectares       float64           `json:"areaHectares" gorm:"not null"`
	RegisteredAt       time.Time         `json:"registeredAt" gorm:"autoCreateTime"`
	Producer           *Producer         `json:"producer,omitempty" gorm:"foreignKey:ProducerID"`
	DegradationLevel   *DegradationLevel `json:"degradationLevel,omitempty" gorm:"foreignKey:DegradationLevelID"`
	Sensors            []Sensor          `json:"sensors,omitempty" gorm:"foreignKey:PropertyID"`
}

type CreatePropertyInput struct {
	ProducerID         uint    `json:"producerId" binding:"required"`
	DegradationLevelID uint    `json:"degradationLevelId" binding:"required"`
	Name               string  `json:"name" binding:"required,max=100"`
	Latitude           float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude          float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	AreaHectares       float64 `json:"areaHectares" binding:"required,gt=0"`
}

type UpdatePropertyInput struct {
	DegradationLevelID uint    `json:"degradationLevelId" binding:"required"`
	Name               string  `json:"name" binding:"required,max=100"`
	Latitude           float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude          float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	AreaHectares       float64 `json:"areaHectares" binding:"required,gt=0"`
}

// PropertyWithRisk decorates a property with the flood-risk probability
// returned by the external scoring API. The score is nil when the API is
// not configured, unreachable, or the property has no readings yet.
type PropertyWithRisk struct {
	Property
	FloodRisk *float64 `json:"floodRisk"`
}
