package models

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	CorrelationID string `json:"correlation_id"`
}
