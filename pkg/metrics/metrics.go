// Package metrics expone los contadores Prometheus de la aplicación.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "producao"

var (
	// HTTPRequestsTotal peticiones HTTP por método, ruta y estado.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration duración de las peticiones HTTP en segundos.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// BatchesRegistered blocos registrados con éxito.
	BatchesRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batches_registered_total",
		Help:      "Blocos registrados",
	})

	// BatchesRejected registros de bloco rechazados por motivo.
	BatchesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_rejected_total",
			Help:      "Registros de bloco rechazados",
		},
		[]string{"reason"},
	)

	// StockMovements movimientos de stock por tipo y origen (ajuste | producao).
	StockMovements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock registrados",
		},
		[]string{"type", "origin"},
	)

	// ComponentConsumedKg cantidad consumida por componente en producción.
	ComponentConsumedKg = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_consumed_kg_total",
			Help:      "Cantidad de componente consumida en producción (kg)",
		},
		[]string{"component"},
	)

	// BalanceDriftCorrections saldos corregidos por el recálculo.
	BalanceDriftCorrections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_drift_corrections_total",
		Help:      "Saldos corregidos al recalcular desde los movimientos",
	})
)
