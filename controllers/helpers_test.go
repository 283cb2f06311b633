package controllers

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sancruz-dev/dotnet-waterwise/config"
	"github.com/sancruz-dev/dotnet-waterwise/messaging"
	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// setupTest wires a fresh in-memory database and a disabled broker into the
// controllers, mirroring production wiring minus the network.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, MigrateModels(db))

	config.DB = db
	Init(
		messaging.NewService(config.RabbitMQConfig{Enabled: false}, zap.NewNop()),
		"",
		"test-secret",
	)
	return db
}

func testRouter() *gin.Engine {
	r := gin.New()
	r.POST("/sensor-data", ReceiveData)
	r.POST("/login", Login)
	r.POST("/producers", CreateProducer)
	r.GET("/properties", GetProperties)
	r.GET("/properties/:id", GetProperty)
	r.DELETE("/properties/:id", DeleteProperty)
	r.DELETE("/producers/:id", DeleteProducer)
	r.DELETE("/degradation-levels/:id", DeleteDegradationLevel)
	return r
}

func performRequest(r *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func f(v float64) *float64 { return &v }

// seedProperty creates a producer, degradation level, property and one
// sensor, returning the property and sensor.
func seedProperty(t *testing.T, db *gorm.DB, name string) (models.Property, models.Sensor) {
	t.Helper()

	producer := models.Producer{FullName: name + " Owner", Email: name + "@waterwise.com"}
	require.NoError(t, db.Create(&producer).Error)

	level := models.DegradationLevel{Code: "LVL-" + name, Description: "level", NumericLevel: 2}
	require.NoError(t, db.Create(&level).Error)

	property := models.Property{
		ProducerID:         producer.ID,
		DegradationLevelID: level.ID,
		Name:               name,
		Latitude:           -23.55,
		Longitude:          -46.63,
		AreaHectares:       100,
	}
	require.NoError(t, db.Create(&property).Error)

	sensor := models.Sensor{PropertyID: property.ID, SensorTypeID: 1, Status: "ACTIVE"}
	require.NoError(t, db.Create(&sensor).Error)

	return property, sensor
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}
