package service

import (
	"sync"
	"time"

	"invoiceagent/internal/domain"
)

// ReportStore keeps the most recent report in memory for later display and
// export. Reports are request-scoped data; a restart losing them is
// acceptable.
type ReportStore struct {
	mu     sync.RWMutex
	latest *domain.StoredReport
}

// NewReportStore creates an empty ReportStore.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Put replaces the stored report.
func (s *ReportStore) Put(report *domain.ReportData) *domain.StoredReport {
	stored := &domain.StoredReport{
		Report:      report,
		GeneratedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.latest = stored
	s.mu.Unlock()
	return stored
}

// Latest returns the most recently stored report, or domain.ErrNoReport when
// none has been generated yet.
func (s *ReportStore) Latest() (*domain.StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, domain.ErrNoReport
	}
	return s.latest, nil
}
