package metricsd

import (
	"sync"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
)

const (
	// maxHistoryPoints equivale a 24 horas con una muestra por minuto.
	maxHistoryPoints = 1440
	alertRetention   = 24 * time.Hour
	inactiveTimeout  = 5 * time.Minute
)

// MetricsReport es el cuerpo que envían los procesos monitoreados. Todas las
// secciones son opcionales; solo se procesan las presentes.
type MetricsReport struct {
	CPU      *CPUSection      `json:"cpu,omitempty"`
	Memory   *PercentSection  `json:"memory,omitempty"`
	Disk     *PercentSection  `json:"disk,omitempty"`
	Database *DatabaseSection `json:"database,omitempty"`
}

type CPUSection struct {
	TotalUsage float64 `json:"total_usage"`
}

type PercentSection struct {
	UsagePercent float64 `json:"usage_percent"`
}

type DatabaseSection struct {
	Status         string  `json:"status"`
	Error          string  `json:"error,omitempty"`
	ResponseTimeMs float64 `json:"response_time_ms,omitempty"`
}

type ProcessInfo struct {
	Name         string         `json:"name"`
	FirstSeen    time.Time      `json:"firstSeen"`
	LastSeen     time.Time      `json:"lastSeen"`
	MetricsCount int            `json:"metricsCount"`
	Status       string         `json:"status"`
	LastMetrics  *MetricsReport `json:"lastMetrics,omitempty"`
}

type Alert struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Type      string    `json:"type"`
	Value     float64   `json:"value,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Error     string    `json:"error,omitempty"`
	Severity  string    `json:"severity"`
}

type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type DatabasePoint struct {
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	ResponseTime float64   `json:"response_time"`
}

type History struct {
	CPU      []HistoryPoint  `json:"cpu"`
	Memory   []HistoryPoint  `json:"memory"`
	Disk     []HistoryPoint  `json:"disk"`
	Database []DatabasePoint `json:"database"`
}

// Store consolida métricas de múltiples procesos. A diferencia de un loop de
// eventos mononúcleo, aquí llegan requests concurrentes, así que todo acceso
// pasa por el mutex.
type Store struct {
	mu sync.Mutex

	thresholds config.MetricsConfig
	startTime  time.Time
	now        func() time.Time

	processes     map[string]*ProcessInfo
	alerts        []Alert
	history       History
	totalRequests int
}

func NewStore(thresholds config.MetricsConfig) *Store {
	return &Store{
		thresholds: thresholds,
		startTime:  time.Now(),
		now:        time.Now,
		processes:  make(map[string]*ProcessInfo),
	}
}

// Ingest registra un reporte de métricas de un proceso, evalúa alertas y
// actualiza el histórico.
func (s *Store) Ingest(source string, report MetricsReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	info, ok := s.processes[source]
	if !ok {
		info = &ProcessInfo{Name: source, FirstSeen: now}
		s.processes[source] = info
	}
	info.LastSeen = now
	info.MetricsCount++
	info.Status = "active"
	info.LastMetrics = &report

	s.evaluateAlerts(source, report, now)
	s.appendHistory(report, now)
	s.pruneAlerts(now)
	s.totalRequests++
}

func (s *Store) evaluateAlerts(source string, report MetricsReport, now time.Time) {
	if report.CPU != nil && report.CPU.TotalUsage > s.thresholds.CPUThreshold {
		s.alerts = append(s.alerts, Alert{
			Timestamp: now,
			Source:    source,
			Type:      "HIGH_CPU",
			Value:     report.CPU.TotalUsage,
			Threshold: s.thresholds.CPUThreshold,
			Severity:  "warning",
		})
	}
	if report.Memory != nil && report.Memory.UsagePercent > s.thresholds.MemoryThreshold {
		s.alerts = append(s.alerts, Alert{
			Timestamp: now,
			Source:    source,
			Type:      "HIGH_MEMORY",
			Value:     report.Memory.UsagePercent,
			Threshold: s.thresholds.MemoryThreshold,
			Severity:  "warning",
		})
	}
	if report.Disk != nil && report.Disk.UsagePercent > s.thresholds.DiskThreshold {
		s.alerts = append(s.alerts, Alert{
			Timestamp: now,
			Source:    source,
			Type:      "HIGH_DISK",
			Value:     report.Disk.UsagePercent,
			Threshold: s.thresholds.DiskThreshold,
			Severity:  "warning",
		})
	}
	if report.Database != nil && report.Database.Status == "down" {
		s.alerts = append(s.alerts, Alert{
			Timestamp: now,
			Source:    source,
			Type:      "DATABASE_DOWN",
			Error:     report.Database.Error,
			Severity:  "critical",
		})
	}
}

func (s *Store) appendHistory(report MetricsReport, now time.Time) {
	if report.CPU != nil {
		s.history.CPU = capPoints(append(s.history.CPU, HistoryPoint{Timestamp: now, Value: report.CPU.TotalUsage}))
	}
	if report.Memory != nil {
		s.history.Memory = capPoints(append(s.history.Memory, HistoryPoint{Timestamp: now, Value: report.Memory.UsagePercent}))
	}
	if report.Disk != nil {
		s.history.Disk = capPoints(append(s.history.Disk, HistoryPoint{Timestamp: now, Value: report.Disk.UsagePercent}))
	}
	if report.Database != nil {
		s.history.Database = append(s.history.Database, DatabasePoint{
			Timestamp:    now,
			Status:       report.Database.Status,
			ResponseTime: report.Database.ResponseTimeMs,
		})
		if len(s.history.Database) > maxHistoryPoints {
			s.history.Database = s.history.Database[len(s.history.Database)-maxHistoryPoints:]
		}
	}
}

func capPoints(points []HistoryPoint) []HistoryPoint {
	if len(points) > maxHistoryPoints {
		return points[len(points)-maxHistoryPoints:]
	}
	return points
}

func (s *Store) pruneAlerts(now time.Time) {
	cutoff := now.Add(-alertRetention)
	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.Timestamp.After(cutoff) {
			kept = append(kept, a)
		}
	}
	s.alerts = kept
}

// StatusSnapshot es la respuesta de GET /status.
type StatusSnapshot struct {
	Timestamp time.Time              `json:"timestamp"`
	Processes map[string]ProcessInfo `json:"processes"`
	Alerts    []Alert                `json:"alerts"`
	Summary   map[string]interface{} `json:"summary"`
}

func (s *Store) Status() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.markInactive(now)

	processes := make(map[string]ProcessInfo, len(s.processes))
	active := 0
	for name, info := range s.processes {
		processes[name] = *info
		if info.Status == "active" {
			active++
		}
	}

	return StatusSnapshot{
		Timestamp: now,
		Processes: processes,
		Alerts:    lastAlerts(s.alerts, 10),
		Summary: map[string]interface{}{
			"total_processes":  len(s.processes),
			"active_processes": active,
			"total_alerts":     len(s.alerts),
			"uptime_minutes":   int(now.Sub(s.startTime).Minutes()),
		},
	}
}

func (s *Store) markInactive(now time.Time) {
	for _, info := range s.processes {
		if now.Sub(info.LastSeen) > inactiveTimeout {
			info.Status = "inactive"
		}
	}
}

// HistorySince devuelve el histórico posterior al corte indicado.
func (s *Store) HistorySince(hours int) History {
	if hours <= 0 {
		hours = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	since := s.now().Add(-time.Duration(hours) * time.Hour)
	out := History{
		CPU:    filterPoints(s.history.CPU, since),
		Memory: filterPoints(s.history.Memory, since),
		Disk:   filterPoints(s.history.Disk, since),
	}
	for _, p := range s.history.Database {
		if p.Timestamp.After(since) {
			out.Database = append(out.Database, p)
		}
	}
	return out
}

func filterPoints(points []HistoryPoint, since time.Time) []HistoryPoint {
	var out []HistoryPoint
	for _, p := range points {
		if p.Timestamp.After(since) {
			out = append(out, p)
		}
	}
	return out
}

// Alerts devuelve hasta las últimas 50 alertas, opcionalmente filtradas por
// severidad.
func (s *Store) Alerts(severity string) []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := s.alerts
	if severity != "" {
		filtered := make([]Alert, 0, len(alerts))
		for _, a := range alerts {
			if a.Severity == severity {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}
	return lastAlerts(alerts, 50)
}

func lastAlerts(alerts []Alert, n int) []Alert {
	if len(alerts) > n {
		alerts = alerts[len(alerts)-n:]
	}
	out := make([]Alert, len(alerts))
	copy(out, alerts)
	return out
}

// UptimeSeconds lleva el tiempo desde el arranque del listener.
func (s *Store) UptimeSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.now().Sub(s.startTime).Seconds())
}
