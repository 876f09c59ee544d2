package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(resource, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := counterKey(resource, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(resource, method, code string) {
	if m == nil {
		return
	}
	key := counterKey(resource, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RequestCount returns the current counter for a resource/method/status triple.
func (m *Metrics) RequestCount(resource, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[counterKey(resource, method, strconv.Itoa(status))]
}

// ErrorCount returns the current counter for a resource/method/code triple.
func (m *Metrics) ErrorCount(resource, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[counterKey(resource, method, code)]
}

func counterKey(resource, method, suffix string) string {
	return resource + "|" + method + "|" + suffix
}
