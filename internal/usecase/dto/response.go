package dto

import "time"

// HealthResponse - ответ health-check
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// StatsResponse - размер хранилища и текстового индекса
type StatsResponse struct {
	Documents        int64  `json:"documents"`
	IndexedDocuments uint64 `json:"indexed_documents"`
}
