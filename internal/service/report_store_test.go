package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceagent/internal/domain"
	"invoiceagent/internal/service"
)

func TestReportStore_EmptyStore(t *testing.T) {
	store := service.NewReportStore()

	_, err := store.Latest()

	assert.True(t, errors.Is(err, domain.ErrNoReport))
}

func TestReportStore_PutAndLatest(t *testing.T) {
	store := service.NewReportStore()

	first := &domain.ReportData{TotalProcessed: 1}
	stored := store.Put(first)
	assert.False(t, stored.GeneratedAt.IsZero())

	second := &domain.ReportData{TotalProcessed: 2}
	store.Put(second)

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Report.TotalProcessed)
}
