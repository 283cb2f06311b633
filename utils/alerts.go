package utils

import (
	"fmt"
	"time"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// AlertRule is one independent predicate over a reading. Check returns the
// triggering value and whether the rule fired. Rules are evaluated in order
// and each firing rule yields exactly one alert.
type AlertRule struct {
	Type       string
	Severity   string
	RoutingKey string
	Check      func(models.Reading) (float64, bool)
	Message    func(value float64) string
}

var alertRules = []AlertRule{
	{
		Type:       models.AlertMoistureCritical,
		Severity:   models.SeverityHigh,
		RoutingKey: "moisture.critical",
		Check: func(r models.Reading) (float64, bool) {
			if r.SoilMoisture != nil && *r.SoilMoisture < 20 {
				return *r.SoilMoisture, true
			}
			return 0, false
		},
		Message: func(value float64) string {
			return fmt.Sprintf("Critical soil moisture detected: %.1f%%", value)
		},
	},
	{
		Type:       models.AlertPrecipitationIntense,
		Severity:   models.SeverityCritical,
		RoutingKey: "precipitation.intense",
		Check: func(r models.Reading) (float64, bool) {
			if r.PrecipitationMm != nil && *r.PrecipitationMm > 50 {
				return *r.PrecipitationMm, true
			}
			return 0, false
		},
		Message: func(value float64) string {
			return fmt.Sprintf("Intense precipitation: %.1fmm/h - flood risk", value)
		},
	},
}

// EvaluateAlerts applies every rule to a reading and returns the alerts that
// fired. A reading can yield zero, one, or several alerts.
func EvaluateAlerts(reading models.Reading, propertyName, producerName string) []models.Alert {
	var alerts []models.Alert

	for _, rule := range alertRules {
		value, fired := rule.Check(reading)
		if !fired {
			continue
		}

		alerts = append(alerts, models.Alert{
			Type:       rule.Type,
			Severity:   rule.Severity,
			Property:   propertyName,
			Producer:   producerName,
			Value:      value,
			Timestamp:  time.Now().UTC(),
			Message:    rule.Message(value),
			RoutingKey: rule.RoutingKey,
		})
	}

	return alerts
}
