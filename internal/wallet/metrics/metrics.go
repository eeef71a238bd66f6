package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for wallet operations.
type Metrics struct {
	CredentialsIssued     *prometheus.CounterVec
	CredentialsRevoked    prometheus.Counter
	CredentialsRestored   prometheus.Counter
	CredentialsImported   prometheus.Counter
	CredentialsRemoved    prometheus.Counter
	BackupRestores        prometheus.Counter
	RestoreRecordsSkipped prometheus.Counter
	WalletSize            prometheus.Gauge
	PersistLatency        prometheus.Histogram
	SearchLatency         prometheus.Histogram
}

// New registers and returns wallet metrics collectors.
func New() *Metrics {
	return &Metrics{
		CredentialsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eduraksha_wallet_credentials_issued_total",
			Help: "Total number of credentials added to the wallet, labeled by origin (self_issued or external)",
		}, []string{"origin"}),
		CredentialsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_wallet_credentials_revoked_total",
			Help: "Total number of credential revocations",
		}),
		CredentialsRestored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_wallet_credentials_restored_total",
			Help: "Total number of credentials restored to active",
		}),
		CredentialsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_wallet_credentials_imported_total",
			Help: "Total number of credentials imported from external documents",
		}),
		CredentialsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_wallet_credentials_removed_total",
			Help: "Total number of credentials explicitly removed",
		}),
		BackupRestores: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_wallet_backup_restores_total",
			Help: "Total number of backup restore operations",
		}),
		RestoreRecordsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_wallet_restore_records_skipped_total",
			Help: "Total number of backup records skipped during best-effort restore",
		}),
		WalletSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eduraksha_wallet_credentials",
			Help: "Current number of credentials held in the wallet",
		}),
		PersistLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eduraksha_wallet_persist_latency_seconds",
			Help:    "Latency of full-set snapshot writes in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		SearchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eduraksha_wallet_search_latency_seconds",
			Help:    "Latency of credential search in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementIssued(origin string) {
	m.CredentialsIssued.WithLabelValues(origin).Inc()
}

func (m *Metrics) IncrementRevoked()        { m.CredentialsRevoked.Inc() }
func (m *Metrics) IncrementRestored()       { m.CredentialsRestored.Inc() }
func (m *Metrics) IncrementImported()       { m.CredentialsImported.Inc() }
func (m *Metrics) IncrementRemoved()        { m.CredentialsRemoved.Inc() }
func (m *Metrics) IncrementBackupRestores() { m.BackupRestores.Inc() }

func (m *Metrics) AddRestoreRecordsSkipped(count float64) {
	m.RestoreRecordsSkipped.Add(count)
}

func (m *Metrics) SetWalletSize(count float64) {
	m.WalletSize.Set(count)
}

// ObservePersistLatency records the latency of a snapshot write.
func (m *Metrics) ObservePersistLatency(durationSeconds float64) {
	m.PersistLatency.Observe(durationSeconds)
}

// ObserveSearchLatency records the latency of a search operation.
func (m *Metrics) ObserveSearchLatency(durationSeconds float64) {
	m.SearchLatency.Observe(durationSeconds)
}
