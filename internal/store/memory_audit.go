package store

import (
	"context"
	"maps"
	"sync"

	"github.com/MKhiriev/go-task-tracker/models"
)

type memoryAuditRepository struct {
	mu      sync.RWMutex
	entries []models.AuditLogEntry
}

// NewMemoryAuditRepository returns an empty in-memory [AuditRepository].
func NewMemoryAuditRepository() AuditRepository {
	return &memoryAuditRepository{}
}

func (m *memoryAuditRepository) AppendAuditEntries(_ context.Context, entries []models.AuditLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		e.UserID = clonePtr(e.UserID)
		e.Details = maps.Clone(e.Details)
		m.entries = append(m.entries, e)
	}
	return nil
}

func (m *memoryAuditRepository) ListAuditEntries(_ context.Context, correlationID string) ([]models.AuditLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.AuditLogEntry, 0)
	for _, e := range m.entries {
		if e.CorrelationID != correlationID {
			continue
		}
		e.UserID = clonePtr(e.UserID)
		e.Details = maps.Clone(e.Details)
		result = append(result, e)
	}
	return result, nil
}
