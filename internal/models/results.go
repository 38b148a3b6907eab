package models

// BatchSummary aggregates the outcome of one ProcessBatch call. The tallies
// cover only the requests of that batch, not the process-wide counters.
type BatchSummary struct {
	TotalRequests int     `json:"totalRequests"`
	Processed     int64   `json:"processed"`
	Successful    int64   `json:"successful"`
	Failed        int64   `json:"failed"`
	Retries       int64   `json:"retries"`
	DurationMs    int64   `json:"durationMs"`
	Throughput    float64 `json:"throughput"`
}

// MetricsSnapshot is a point-in-time view of the process-wide counters.
type MetricsSnapshot struct {
	Processed         int64   `json:"processed"`
	Successful        int64   `json:"successful"`
	Failed            int64   `json:"failed"`
	Retries           int64   `json:"retries"`
	SuccessRate       float64 `json:"successRate"`
	ThreadPoolSize    int     `json:"threadPoolSize"`
	PendingLogEntries int     `json:"pendingLogEntries"`
}
