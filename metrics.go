package main

import (
	"sync"
	"time"
)

type Metrics struct {
	MessagesSent  int64
	MessagesError int64
	BytesSent     int64
	LastStatus    int
	Elapsed       time.Duration
	mu            sync.RWMutex
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	MessagesSent  int64
	MessagesError int64
	BytesSent     int64
	LastStatus    int
	Elapsed       time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordSent(bytes, status int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MessagesSent++
	m.BytesSent += int64(bytes)
	m.LastStatus = status
	m.Elapsed += elapsed
}

// RecordError counts a failed send. status is 0 when no response arrived.
func (m *Metrics) RecordError(status int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MessagesError++
	m.LastStatus = status
	m.Elapsed += elapsed
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		MessagesSent:  m.MessagesSent,
		MessagesError: m.MessagesError,
		BytesSent:     m.BytesSent,
		LastStatus:    m.LastStatus,
		Elapsed:       m.Elapsed,
	}
}
