package messaging

import (
	"time"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// Broker routing keys. Raw readings go out under a fixed key; alerts are
// routed per subtype under the "alerts." prefix.
const (
	ReadingRoutingKey  = "sensor.data.received"
	AlertRoutingPrefix = "alerts."
)

// ReadingEvent is the flat payload published for every accepted reading.
// Only scalar fields: entity navigation must never leak onto the wire.
type ReadingEvent struct {
	ReadingID       uint      `json:"readingId"`
	SensorID        uint      `json:"sensorId"`
	PropertyName    string    `json:"propertyName"`
	ProducerName    string    `json:"producerName"`
	Timestamp       time.Time `json:"timestamp"`
	SoilMoisture    *float64  `json:"soilMoisture,omitempty"`
	AirTemperature  *float64  `json:"airTemperature,omitempty"`
	PrecipitationMm *float64  `json:"precipitationMm,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
}

// NewReadingEvent builds the wire payload for an accepted reading.
func NewReadingEvent(reading models.Reading, propertyName, producerName string) ReadingEvent {
	return ReadingEvent{
		ReadingID:       reading.ID,
		SensorID:        reading.SensorID,
		PropertyName:    propertyName,
		ProducerName:    producerName,
		Timestamp:       reading.Timestamp,
		SoilMoisture:    reading.SoilMoisture,
		AirTemperature:  reading.AirTemperature,
		PrecipitationMm: reading.PrecipitationMm,
		PublishedAt:     time.Now().UTC(),
	}
}

// AlertEvent is the flat payload published for every derived alert.
type AlertEvent struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Property  string    `json:"property"`
	Producer  string    `json:"producer"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// NewAlertEvent builds the wire payload for a derived alert.
func NewAlertEvent(alert models.Alert) AlertEvent {
	return AlertEvent{
		Type:      alert.Type,
		Severity:  alert.Severity,
		Property:  alert.Property,
		Producer:  alert.Producer,
		Value:     alert.Value,
		Timestamp: alert.Timestamp,
		Message:   alert.Message,
	}
}
