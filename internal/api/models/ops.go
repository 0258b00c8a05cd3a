package models

import (
	"github.com/shashankpm7/aqi-dashboard/internal/provider/resilience"
)

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus represents the overall system status.
type SystemStatus struct {
	Status      HealthStatus               `json:"status"`
	Time        Timestamp                  `json:"time"`
	Dataset     *DatasetSummary            `json:"dataset,omitempty"`
	Sources     []*resilience.SourceHealth `json:"sources,omitempty"`
	ActiveFlags []string                   `json:"activeFlags,omitempty"`
}
