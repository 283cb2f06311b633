package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

func seedReadings(t *testing.T, db *gorm.DB, sensorID uint, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		reading := models.Reading{
			SensorID:     sensorID,
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
			SoilMoisture: f(40),
		}
		require.NoError(t, db.Create(&reading).Error)
	}
}

func TestDeleteProperty_CascadesOverSensorsAndReadings(t *testing.T) {
	db := setupTest(t)
	r := testRouter()

	target, targetSensor := seedProperty(t, db, "Doomed")
	secondSensor := models.Sensor{PropertyID: target.ID, SensorTypeID: 1, Status: "ACTIVE"}
	require.NoError(t, db.Create(&secondSensor).Error)
	seedReadings(t, db, targetSensor.ID, 3)
	seedReadings(t, db, secondSensor.ID, 2)

	other, otherSensor := seedProperty(t, db, "Survivor")
	seedReadings(t, db, otherSensor.ID, 4)

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/properties/%d", target.ID), "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	assert.Zero(t, countRows(t, db, &models.Property{}, "id = ?", target.ID))
	assert.Zero(t, countRows(t, db, &models.Sensor{}, "property_id = ?", target.ID))
	assert.Zero(t, countRows(t, db, &models.Reading{}, "sensor_id IN ?", []uint{targetSensor.ID, secondSensor.ID}))

	// Unrelated rows untouched.
	assert.Equal(t, int64(1), countRows(t, db, &models.Property{}, "id = ?", other.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Sensor{}, "property_id = ?", other.ID))
	assert.Equal(t, int64(4), countRows(t, db, &models.Reading{}, "sensor_id = ?", otherSensor.ID))
}

func TestDeleteProperty_WithoutSensors(t *testing.T) {
	db := setupTest(t)
	r := testRouter()

	property, sensor := seedProperty(t, db, "Bare")
	require.NoError(t, db.Delete(&sensor).Error)

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/properties/%d", property.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, countRows(t, db, &models.Property{}, "id = ?", property.ID))
}

func TestDeleteProperty_NotFound(t *testing.T) {
	db := setupTest(t)
	r := testRouter()
	seedProperty(t, db, "Untouched")

	w := performRequest(r, http.MethodDelete, "/properties/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(1), countRows(t, db, &models.Property{}, ""))
}

func TestDeleteProperty_FailureRollsEverythingBack(t *testing.T) {
	db := setupTest(t)
	r := testRouter()

	property, sensor := seedProperty(t, db, "Resilient")
	seedReadings(t, db, sensor.ID, 3)

	// Simulate a failure during the sensor-deletion step. The readings
	// deleted before it must be restored by the rollback.
	require.NoError(t, db.Exec(`
		CREATE TRIGGER block_sensor_delete BEFORE DELETE ON sensors
		BEGIN SELECT RAISE(ABORT, 'simulated sensor delete failure'); END;
	`).Error)

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/properties/%d", property.ID), "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "No data was changed")

	assert.Equal(t, int64(1), countRows(t, db, &models.Property{}, "id = ?", property.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Sensor{}, "property_id = ?", property.ID))
	assert.Equal(t, int64(3), countRows(t, db, &models.Reading{}, "sensor_id = ?", sensor.ID))
}

func TestGetProperty_NotFound(t *testing.T) {
	setupTest(t)
	r := testRouter()

	w := performRequest(r, http.MethodGet, "/properties/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProperties_NoRiskWithoutScorer(t *testing.T) {
	db := setupTest(t)
	r := testRouter()

	_, sensor := seedProperty(t, db, "Scored")
	seedReadings(t, db, sensor.ID, 1)

	w := performRequest(r, http.MethodGet, "/properties", "")
	require.Equal(t, http.StatusOK, w.Code)
	// Scoring API not configured: score present as an explicit null.
	assert.Contains(t, w.Body.String(), `"floodRisk":null`)
}
