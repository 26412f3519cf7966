package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for the status endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	StoreOpCount             uint64    `json:"storeOpCount"`
	AverageStoreOpDurationMs float64   `json:"averageStoreOpDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
