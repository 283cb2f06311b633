package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// ErrRiskAPINotConfigured is returned when no scoring endpoint is set.
var ErrRiskAPINotConfigured = errors.New("risk API URL not configured")

// GetFloodRisk calls the external flood-risk scoring API with the property's
// static attributes and its latest reading, returning a probability in [0,1].
func GetFloodRisk(apiURL string, property models.Property, reading models.Reading) (float64, error) {
	if apiURL == "" {
		return 0, ErrRiskAPINotConfigured
	}

	// Same defaults the scoring model was trained with.
	soilMoisture := 30.0
	if reading.SoilMoisture != nil {
		soilMoisture = *reading.SoilMoisture
	}
	airTemperature := 25.0
	if reading.AirTemperature != nil {
		airTemperature = *reading.AirTemperature
	}
	precipitation := 0.0
	if reading.PrecipitationMm != nil {
		precipitation = *reading.PrecipitationMm
	}

	degradationLevel := 0
	if property.DegradationLevel != nil {
		degradationLevel = property.DegradationLevel.NumericLevel
	}

	requestBody, _ := json.Marshal(map[string]any{
		"soilMoisture":     soilMoisture,
		"airTemperature":   airTemperature,
		"precipitationMm":  precipitation,
		"areaHectares":     property.AreaHectares,
		"degradationLevel": degradationLevel,
		"latitude":         property.Latitude,
		"longitude":        property.Longitude,
	})

	resp, err := http.Post(apiURL, "application/json", bytes.NewBuffer(requestBody))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("risk API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var response struct {
		FloodRisk float64 `json:"floodRisk"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, err
	}

	if response.FloodRisk < 0 || response.FloodRisk > 1 {
		return 0, fmt.Errorf("risk API returned probability out of range: %f", response.FloodRisk)
	}

	return response.FloodRisk, nil
}
