package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

func TestReceiveData_PersistsAndResponds(t *testing.T) {
	db := setupTest(t)
	_, sensor := seedProperty(t, db, "Fazenda A")
	r := testRouter()

	body := fmt.Sprintf(`{"sensorId": %d, "soilMoisture": 45.5, "airTemperature": 22.0}`, sensor.ID)
	w := performRequest(r, http.MethodPost, "/sensor-data", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success   bool   `json:"success"`
		ReadingID uint   `json:"readingId"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.ReadingID)

	var reading models.Reading
	require.NoError(t, db.First(&reading, resp.ReadingID).Error)
	assert.Equal(t, sensor.ID, reading.SensorID)
	require.NotNil(t, reading.SoilMoisture)
	assert.Equal(t, 45.5, *reading.SoilMoisture)
	assert.Nil(t, reading.PrecipitationMm)
}

func TestReceiveData_UnknownSensor(t *testing.T) {
	db := setupTest(t)
	r := testRouter()

	w := performRequest(r, http.MethodPost, "/sensor-data", `{"sensorId": 999}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Sensor not found")
	assert.Zero(t, countRows(t, db, &models.Reading{}, ""))
}

func TestReceiveData_ValidationFailure(t *testing.T) {
	db := setupTest(t)
	_, sensor := seedProperty(t, db, "Fazenda B")
	r := testRouter()

	for _, body := range []string{
		fmt.Sprintf(`{"sensorId": %d, "soilMoisture": 150}`, sensor.ID),
		fmt.Sprintf(`{"sensorId": %d, "airTemperature": -80}`, sensor.ID),
		fmt.Sprintf(`{"sensorId": %d, "precipitationMm": 900}`, sensor.ID),
		`{"soilMoisture": 10}`,
	} {
		w := performRequest(r, http.MethodPost, "/sensor-data", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, countRows(t, db, &models.Reading{}, ""))
}

func TestReceiveData_SubSecondSubmissionsGetDistinctTimestamps(t *testing.T) {
	db := setupTest(t)
	_, sensor := seedProperty(t, db, "Fazenda C")
	r := testRouter()

	fixed := time.Now().Truncate(time.Second)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	body := fmt.Sprintf(`{"sensorId": %d, "soilMoisture": 40}`, sensor.ID)
	first := performRequest(r, http.MethodPost, "/sensor-data", body)
	second := performRequest(r, http.MethodPost, "/sensor-data", body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var readings []models.Reading
	require.NoError(t, db.Where("sensor_id = ?", sensor.ID).Find(&readings).Error)
	require.Len(t, readings, 2)
	assert.NotEqual(t, readings[0].Timestamp, readings[1].Timestamp)
}

func TestReceiveData_ResidualRaceReportsConflict(t *testing.T) {
	// The guard only looks at the most recent reading. With a newer reading
	// outside the one-second window and an older one exactly at "now", the
	// insert collides and the unique index is the arbiter.
	db := setupTest(t)
	_, sensor := seedProperty(t, db, "Fazenda D")
	r := testRouter()

	fixed := time.Now().Truncate(time.Second)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	require.NoError(t, db.Create(&models.Reading{SensorID: sensor.ID, Timestamp: fixed}).Error)
	require.NoError(t, db.Create(&models.Reading{SensorID: sensor.ID, Timestamp: fixed.Add(2 * time.Second)}).Error)

	body := fmt.Sprintf(`{"sensorId": %d, "soilMoisture": 40}`, sensor.ID)
	w := performRequest(r, http.MethodPost, "/sensor-data", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Try again")
	assert.Equal(t, int64(2), countRows(t, db, &models.Reading{}, "sensor_id = ?", sensor.ID))
}

func TestReceiveData_SucceedsWithBrokerDown(t *testing.T) {
	// The test broker is constructed disabled, standing in for a dead
	// RabbitMQ: ingestion must still accept and persist.
	db := setupTest(t)
	_, sensor := seedProperty(t, db, "Fazenda E")
	r := testRouter()

	require.False(t, rabbit.Enabled())

	// Moisture below threshold also forces the alert publish path.
	body := fmt.Sprintf(`{"sensorId": %d, "soilMoisture": 12}`, sensor.ID)
	w := performRequest(r, http.MethodPost, "/sensor-data", body)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), countRows(t, db, &models.Reading{}, "sensor_id = ?", sensor.ID))
}
