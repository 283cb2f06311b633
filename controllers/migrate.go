package controllers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Producer{},
		&models.DegradationLevel{},
		&models.SensorType{},
		&models.Property{},
		&models.Sensor{},
		&models.Reading{},
	)
}

// SeedDatabase loads the initial catalog and sample entities. Skipped when
// producers already exist.
func SeedDatabase(db *gorm.DB) error {
	var producerCount int64
	if err := db.Model(&models.Producer{}).Count(&producerCount).Error; err != nil {
		return err
	}
	if producerCount > 0 {
		zap.L().Debug("database already seeded, skipping")
		return nil
	}

	degradationLevels := []models.DegradationLevel{
		{Code: "EXCELLENT", Description: "Soil in excellent condition", NumericLevel: 1, CorrectiveActions: "Keep current practices"},
		{Code: "GOOD", Description: "Soil in good condition", NumericLevel: 2, CorrectiveActions: "Regular monitoring"},
		{Code: "MODERATE", Description: "Soil needs attention", NumericLevel: 3, CorrectiveActions: "Adopt conservation practices"},
		{Code: "POOR", Description: "Degraded soil", NumericLevel: 4, CorrectiveActions: "Urgent recovery required"},
		{Code: "CRITICAL", Description: "Critically degraded soil", NumericLevel: 5, CorrectiveActions: "Immediate intervention required"},
	}
	if err := db.Create(&degradationLevels).Error; err != nil {
		return err
	}

	sensorTypes := []models.SensorType{
		{Name: "SOIL_MOISTURE", Description: "Soil moisture sensor", Unit: "%", MinValue: 0, MaxValue: 100},
		{Name: "TEMPERATURE", Description: "Air temperature sensor", Unit: "°C", MinValue: -10, MaxValue: 50},
		{Name: "PRECIPITATION", Description: "Rain gauge", Unit: "mm/h", MinValue: 0, MaxValue: 500},
		{Name: "SOIL_PH", Description: "Soil pH sensor", Unit: "pH", MinValue: 0, MaxValue: 14},
	}
	if err := db.Create(&sensorTypes).Error; err != nil {
		return err
	}

	producers := []models.Producer{
		{FullName: "João Silva", Email: "joao.silva@waterwise.com"},
		{FullName: "Maria Santos", Email: "maria.santos@waterwise.com"},
		{FullName: "Pedro Oliveira", Email: "pedro.oliveira@waterwise.com"},
	}
	if err := db.Create(&producers).Error; err != nil {
		return err
	}

	properties := []models.Property{
		{ProducerID: producers[0].ID, DegradationLevelID: degradationLevels[1].ID, Name: "Fazenda São João", Latitude: -23.5505, Longitude: -46.6333, AreaHectares: 150.5},
		{ProducerID: producers[1].ID, DegradationLevelID: degradationLevels[0].ID, Name: "Sítio Boa Vista", Latitude: -23.5489, Longitude: -46.6388, AreaHectares: 75.2},
		{ProducerID: producers[2].ID, DegradationLevelID: degradationLevels[2].ID, Name: "Rancho Verde", Latitude: -23.5601, Longitude: -46.6528, AreaHectares: 200.0},
	}
	if err := db.Create(&properties).Error; err != nil {
		return err
	}

	model := func(s string) *string { return &s }
	sensors := []models.Sensor{
		{PropertyID: properties[0].ID, SensorTypeID: sensorTypes[0].ID, DeviceModel: model("ESP32-SOIL-001"), Status: "ACTIVE"},
		{PropertyID: properties[0].ID, SensorTypeID: sensorTypes[1].ID, DeviceModel: model("ESP32-TEMP-001"), Status: "ACTIVE"},
		{PropertyID: properties[0].ID, SensorTypeID: sensorTypes[2].ID, DeviceModel: model("ESP32-RAIN-001"), Status: "ACTIVE"},
		{PropertyID: properties[1].ID, SensorTypeID: sensorTypes[0].ID, DeviceModel: model("ESP32-SOIL-002"), Status: "ACTIVE"},
		{PropertyID: properties[2].ID, SensorTypeID: sensorTypes[0].ID, DeviceModel: model("ESP32-SOIL-003"), Status: "ACTIVE"},
	}
	if err := db.Create(&sensors).Error; err != nil {
		return err
	}

	zap.L().Info("database seeded",
		zap.Int("producers", len(producers)),
		zap.Int("properties", len(properties)),
		zap.Int("sensors", len(sensors)))
	return nil
}
