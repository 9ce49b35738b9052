package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store operation metrics
	CategoryOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystore_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	ItemOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystore_item_operations_total",
			Help: "Total number of item operations",
		},
		[]string{"operation"},
	)

	OrderOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystore_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	// Import/export metrics
	TransferOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mystore_transfer_operations_total",
			Help: "Total number of import/export operations",
		},
		[]string{"operation", "result"},
	)

	ImportedRowsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mystore_imported_rows_total",
			Help: "Total number of CSV rows imported",
		},
	)

	// Table size metrics
	TableSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mystore_table_size",
			Help: "Current number of records per table",
		},
		[]string{"table"},
	)
)

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordItemOperation increments the counter for item operations
func RecordItemOperation(operation string) {
	ItemOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOrderOperation increments the counter for order operations
func RecordOrderOperation(operation string) {
	OrderOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTransfer increments the counter for an import/export outcome
func RecordTransfer(operation, result string) {
	TransferOperationsCounter.WithLabelValues(operation, result).Inc()
}

// SetTableSize updates the gauge for a table's record count
func SetTableSize(table string, count int64) {
	TableSizeGauge.WithLabelValues(table).Set(float64(count))
}
