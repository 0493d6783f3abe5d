package metricsd

import (
	"testing"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThresholds() config.MetricsConfig {
	return config.MetricsConfig{
		CPUThreshold:    80,
		MemoryThreshold: 90,
		DiskThreshold:   85,
	}
}

func TestIngestRegistersProcess(t *testing.T) {
	store := NewStore(testThresholds())

	store.Ingest("backend", MetricsReport{CPU: &CPUSection{TotalUsage: 42}})
	store.Ingest("backend", MetricsReport{CPU: &CPUSection{TotalUsage: 50}})

	status := store.Status()
	require.Contains(t, status.Processes, "backend")
	assert.Equal(t, 2, status.Processes["backend"].MetricsCount)
	assert.Equal(t, "active", status.Processes["backend"].Status)
	assert.Empty(t, status.Alerts)
}

func TestThresholdAlerts(t *testing.T) {
	store := NewStore(testThresholds())

	// CPU 80 no dispara (el umbral es estrictamente mayor); 81 sí.
	store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 80}})
	assert.Empty(t, store.Alerts(""))

	store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 81}})
	store.Ingest("p", MetricsReport{Memory: &PercentSection{UsagePercent: 95}})
	store.Ingest("p", MetricsReport{Disk: &PercentSection{UsagePercent: 86}})

	alerts := store.Alerts("")
	require.Len(t, alerts, 3)
	assert.Equal(t, "HIGH_CPU", alerts[0].Type)
	assert.Equal(t, "warning", alerts[0].Severity)
	assert.Equal(t, "HIGH_MEMORY", alerts[1].Type)
	assert.Equal(t, "HIGH_DISK", alerts[2].Type)
}

func TestDatabaseDownIsCritical(t *testing.T) {
	store := NewStore(testThresholds())

	store.Ingest("backend", MetricsReport{
		Database: &DatabaseSection{Status: "down", Error: "connection refused"},
	})

	critical := store.Alerts("critical")
	require.Len(t, critical, 1)
	assert.Equal(t, "DATABASE_DOWN", critical[0].Type)
	assert.Equal(t, "connection refused", critical[0].Error)

	assert.Empty(t, store.Alerts("warning"))
}

func TestAlertsPrunedAfterRetention(t *testing.T) {
	store := NewStore(testThresholds())

	current := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 99}})
	require.Len(t, store.Alerts(""), 1)

	// Un reporte 25 horas después poda la alerta vieja.
	current = current.Add(25 * time.Hour)
	store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 10}})
	assert.Empty(t, store.Alerts(""))
}

func TestHistoryCapped(t *testing.T) {
	store := NewStore(testThresholds())

	for i := 0; i < maxHistoryPoints+50; i++ {
		store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 10}})
	}

	store.mu.Lock()
	got := len(store.history.CPU)
	store.mu.Unlock()
	assert.Equal(t, maxHistoryPoints, got)
}

func TestHistorySinceFilters(t *testing.T) {
	store := NewStore(testThresholds())

	current := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 30}})

	current = current.Add(3 * time.Hour)
	store.Ingest("p", MetricsReport{CPU: &CPUSection{TotalUsage: 60}})

	recent := store.HistorySince(1)
	require.Len(t, recent.CPU, 1)
	assert.Equal(t, 60.0, recent.CPU[0].Value)

	all := store.HistorySince(6)
	assert.Len(t, all.CPU, 2)
}

func TestInactiveProcessMarking(t *testing.T) {
	store := NewStore(testThresholds())

	current := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Ingest("viejo", MetricsReport{})

	current = current.Add(10 * time.Minute)
	store.Ingest("nuevo", MetricsReport{})

	status := store.Status()
	assert.Equal(t, "inactive", status.Processes["viejo"].Status)
	assert.Equal(t, "active", status.Processes["nuevo"].Status)
	assert.Equal(t, 1, status.Summary["active_processes"])
}
