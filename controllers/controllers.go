package controllers

import (
	"github.com/sancruz-dev/dotnet-waterwise/messaging"
)

var (
	rabbit     *messaging.Service
	riskAPIURL string
	secretKey  []byte
)

// Init wires the controllers to the long-lived collaborators. Called once
// from main before the router starts serving.
func Init(messagingService *messaging.Service, riskURL string, jwtSecret string) {
	rabbit = messagingService
	riskAPIURL = riskURL
	secretKey = []byte(jwtSecret)
}
