package models

import "time"

// Alert severities and types produced by the rule evaluator.
const (
	AlertMoistureCritical     = "MOISTURE_CRITICAL"
	AlertPrecipitationIntense = "PRECIPITATION_INTENSE"

	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Alert is a transient event derived from a reading. It is never persisted;
// it only exists between the rule evaluator and the publisher.
type Alert struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Property  string    `json:"property"`
	Producer  string    `json:"producer"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	// RoutingKey selects the broker topic suffix, e.g. "moisture.critical".
	RoutingKey string `json:"-"`
}
