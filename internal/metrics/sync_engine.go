package metrics

import (
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncFetchBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "fetch_block_total",
		Help:      "Count of block lookups against the ledger.",
	}, []string{"network", "phase", "status"})

	syncFetchBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "fetch_block_duration_seconds",
		Help:      "Duration of block lookups against the ledger.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "phase", "status"})

	syncNotFoundRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "not_found_retries_total",
		Help:      "Count of lookups retried because the ledger did not know the block yet.",
	}, []string{"network", "phase"})

	syncAppendBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "append_block_total",
		Help:      "Count of block append attempts.",
	}, []string{"network", "phase", "status"})

	syncAppendBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "append_block_duration_seconds",
		Help:      "Duration of the transactional write of one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "phase", "status"})

	syncAppendBlockTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "append_block_transactions",
		Help:      "Number of transactions written per block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network", "phase"})

	syncWatermark = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "watermark_block_number",
		Help:      "Highest block number durably committed.",
	}, []string{"network"})

	syncHead = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sync_engine",
		Name:      "ledger_head_block_number",
		Help:      "Last head number reported by the ledger.",
	}, []string{"network"})
)

// SyncEngine tracks metrics for the sync engine.
type SyncEngine struct {
	network string
}

// NewSyncEngine constructs a SyncEngine collector.
func NewSyncEngine(network model.Network) *SyncEngine {
	return &SyncEngine{network: networkLabel(network)}
}

// ObserveFetchBlock records a block lookup outcome and duration.
func (m SyncEngine) ObserveFetchBlock(phase string, err error, started time.Time) {
	s := status(err)
	syncFetchBlockTotal.WithLabelValues(m.network, phase, s).Inc()
	syncFetchBlockDuration.WithLabelValues(m.network, phase, s).Observe(time.Since(started).Seconds())
}

// ObserveNotFoundRetry records a lookup that will be retried.
func (m SyncEngine) ObserveNotFoundRetry(phase string) {
	syncNotFoundRetriesTotal.WithLabelValues(m.network, phase).Inc()
}

// ObserveAppendBlock records the write of one block and its transactions.
func (m SyncEngine) ObserveAppendBlock(phase string, err error, txs int, started time.Time) {
	s := status(err)
	syncAppendBlockTotal.WithLabelValues(m.network, phase, s).Inc()
	syncAppendBlockDuration.WithLabelValues(m.network, phase, s).Observe(time.Since(started).Seconds())
	if err == nil {
		syncAppendBlockTransactions.WithLabelValues(m.network, phase).Observe(float64(txs))
	}
}

// SetWatermark publishes the highest committed block number.
func (m SyncEngine) SetWatermark(number uint64) {
	syncWatermark.WithLabelValues(m.network).Set(float64(number))
}

// SetHead publishes the ledger head number.
func (m SyncEngine) SetHead(number uint64) {
	syncHead.WithLabelValues(m.network).Set(float64(number))
}
