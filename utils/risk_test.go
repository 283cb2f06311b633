package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

func TestGetFloodRisk_NotConfigured(t *testing.T) {
	_, err := GetFloodRisk("", models.Property{}, models.Reading{})
	assert.ErrorIs(t, err, ErrRiskAPINotConfigured)
}

func TestGetFloodRisk_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"floodRisk": 0.42}`))
	}))
	defer server.Close()

	level := models.DegradationLevel{NumericLevel: 4}
	property := models.Property{AreaHectares: 150.5, DegradationLevel: &level}
	reading := models.Reading{SoilMoisture: f(25), PrecipitationMm: f(60)}

	risk, err := GetFloodRisk(server.URL, property, reading)
	require.NoError(t, err)
	assert.Equal(t, 0.42, risk)
}

func TestGetFloodRisk_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := GetFloodRisk(server.URL, models.Property{}, models.Reading{})
	assert.Error(t, err)
}

func TestGetFloodRisk_OutOfRangeProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"floodRisk": 1.5}`))
	}))
	defer server.Close()

	_, err := GetFloodRisk(server.URL, models.Property{}, models.Reading{})
	assert.Error(t, err)
}
